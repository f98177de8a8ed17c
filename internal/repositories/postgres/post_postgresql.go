package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return handleDBError(err, "create post")
	}
	return nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&post).Error; err != nil {
		return nil, handleDBError(err, "get post by slug")
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filters repositories.PostFilters) ([]*models.Post, int64, error) {
	var posts []*models.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Post{})
	if filters.Tag != "" {
		// Tags are stored as a JSON array of strings.
		query = query.Where("tags @> ?::jsonb", fmt.Sprintf("%q", filters.Tag))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count posts")
	}

	query = applyPagination(query.Order("published_at DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&posts).Error; err != nil {
		return nil, 0, handleDBError(err, "list posts")
	}

	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return handleDBError(err, "update post")
	}
	return nil
}

func (r *postRepository) DeleteBySlug(ctx context.Context, slug string) error {
	result := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.Post{})
	if result.Error != nil {
		return handleDBError(result.Error, "delete post")
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *postRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check post slug")
	}
	return count > 0, nil
}
