package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/pensacomp/lms-service/internal/mail"
	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

const ordersSheet = "Pedidos"

// OrdersReport renders every order as an xlsx workbook for back-office
// reconciliation.
func (s *reportService) OrdersReport(ctx context.Context) ([]byte, error) {
	orders, _, err := s.repo.Order().List(ctx, repositories.OrderFilters{})
	if err != nil {
		return nil, NewInternalError(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ordersSheet)
	if err != nil {
		return nil, NewInternalError(err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Pedido", "Usuário", "Email", "Curso", "Preço", "Data"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(ordersSheet, cell, header); err != nil {
			return nil, NewInternalError(err)
		}
	}

	users := make(map[uint]*models.User)
	courses := make(map[uint]*models.Course)

	for row, order := range orders {
		user, err := s.lookupUser(ctx, users, order.UserID)
		if err != nil {
			return nil, err
		}
		course, err := s.lookupCourse(ctx, courses, order.CourseID)
		if err != nil {
			return nil, err
		}

		values := []interface{}{
			order.ShortRef(),
			user.Name,
			user.Email,
			course.Name,
			course.Price,
			mail.FormatDatePTBR(order.CreatedAt),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(ordersSheet, cell, value); err != nil {
				return nil, NewInternalError(err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, NewInternalError(err)
	}

	s.logger.Info("orders report generated", "orders", len(orders))
	return buf.Bytes(), nil
}

func (s *reportService) lookupUser(ctx context.Context, seen map[uint]*models.User, id uint) (*models.User, error) {
	if user, ok := seen[id]; ok {
		return user, nil
	}
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError(fmt.Errorf("order references unknown user %d: %w", id, err))
	}
	seen[id] = user
	return user, nil
}

func (s *reportService) lookupCourse(ctx context.Context, seen map[uint]*models.Course, id uint) (*models.Course, error) {
	if course, ok := seen[id]; ok {
		return course, nil
	}
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError(fmt.Errorf("order references unknown course %d: %w", id, err))
	}
	seen[id] = course
	return course, nil
}
