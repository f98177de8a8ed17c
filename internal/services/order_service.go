package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pensacomp/lms-service/internal/cache"
	"github.com/pensacomp/lms-service/internal/events"
	"github.com/pensacomp/lms-service/internal/mail"
	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/validator"
)

type orderService struct {
	repo      repositories.Repository
	sessions  *cache.SessionStore
	mailer    mail.Mailer
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewOrderService(
	repo repositories.Repository,
	sessions *cache.SessionStore,
	mailer mail.Mailer,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) OrderService {
	return &orderService{
		repo:      repo,
		sessions:  sessions,
		mailer:    mailer,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Create records a purchase: the confirmation mail first, then the order
// row, the user's access link and the purchase counter in one transaction.
// A failed mail leaves nothing persisted. The duplicate check reads the
// user's owned-courses list and the order table, so two concurrent orders
// for the same course can both pass it; the second one wins nothing but a
// duplicate row.
func (s *orderService) Create(ctx context.Context, user *models.User, req *validator.CreateOrderRequest) (*models.Order, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	if user.OwnsCourse(req.CourseID) {
		return nil, ErrCourseAlreadyOwned
	}
	exists, err := s.repo.Order().ExistsByUserAndCourse(ctx, user.ID, req.CourseID)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if exists {
		return nil, ErrCourseAlreadyOwned
	}

	course, err := s.repo.Course().GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, NewInternalError(err)
	}

	order := &models.Order{
		CourseID:    course.ID,
		UserID:      user.ID,
		Reference:   uuid.New().String(),
		PaymentInfo: toJSON(req.PaymentInfo),
	}

	msg := mail.OrderConfirmationMail(user.Email, user.Name, order.ShortRef(), course.Name, course.Price, time.Now())
	if err := s.mailer.Send(msg); err != nil {
		s.logger.Error("failed to send order confirmation", "order_ref", order.Reference, "error", err)
		return nil, NewInternalError(err)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Order().Create(ctx, order); err != nil {
			return err
		}
		if err := tx.User().AddCourse(ctx, user.ID, course.ID); err != nil {
			return err
		}
		course.Purchased++
		return tx.Course().Update(ctx, course)
	})
	if err != nil {
		return nil, NewInternalError(err)
	}

	// Refresh the session mirror so the new course shows up without a
	// re-login.
	user.Courses = append(user.Courses, models.UserCourse{UserID: user.ID, CourseID: course.ID})
	if err := s.sessions.Set(ctx, user); err != nil {
		s.logger.Warn("failed to refresh session mirror", "user_id", user.ID, "error", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.TypeOrderCreated, events.OrderCreatedEvent{
		OrderID:  order.Reference,
		UserID:   user.ID,
		CourseID: course.ID,
		Price:    course.Price,
	}))

	s.logger.Info("order created", "order_id", order.ID, "user_id", user.ID, "course_id", course.ID)
	return order, nil
}

func (s *orderService) List(ctx context.Context, filters repositories.OrderFilters) ([]*models.Order, int64, error) {
	orders, total, err := s.repo.Order().List(ctx, filters)
	if err != nil {
		return nil, 0, NewInternalError(err)
	}
	return orders, total, nil
}
