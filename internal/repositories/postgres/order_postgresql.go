package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repositories.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return handleDBError(err, "create order")
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, handleDBError(err, "get order by id")
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filters repositories.OrderFilters) ([]*models.Order, int64, error) {
	var orders []*models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count orders")
	}

	query = applyPagination(query.Order("created_at DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, handleDBError(err, "list orders")
	}

	return orders, total, nil
}

func (r *orderRepository) ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check order existence")
	}
	return count > 0, nil
}
