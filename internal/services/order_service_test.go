package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pensacomp/lms-service/internal/cache"
	"github.com/pensacomp/lms-service/internal/events"
	"github.com/pensacomp/lms-service/internal/mail"
	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/validator"
)

type orderFixture struct {
	service   OrderService
	repo      *mockRepository
	mailer    *mail.MockMailer
	publisher *events.MockEventPublisher
	course    *models.Course
	user      *models.User
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctx := context.Background()

	repo := newMockRepository()
	mailer := mail.NewMockMailer()
	publisher := events.NewMockEventPublisher(testLogger())
	service := NewOrderService(repo, cache.NewSessionStore(nil, time.Hour), mailer, publisher, testLogger(), validator.New())

	course := &models.Course{Name: "Pensamento Computacional", Price: 49.9}
	require.NoError(t, repo.Course().Create(ctx, course))

	user := &models.User{Name: "Ana", Email: "ana@example.com", Role: models.RoleUser, IsVerified: true}
	require.NoError(t, repo.User().Create(ctx, user))

	return &orderFixture{service: service, repo: repo, mailer: mailer, publisher: publisher, course: course, user: user}
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.service.Create(ctx, f.user, &validator.CreateOrderRequest{CourseID: f.course.ID})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Len(t, order.ShortRef(), 6)

	// Access granted and counter bumped.
	assert.True(t, f.user.OwnsCourse(f.course.ID))
	stored, err := f.repo.Course().GetByID(ctx, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Purchased)

	// Confirmation mail quotes the short reference and the course.
	sent := f.mailer.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@example.com", sent[0].To)
	assert.Contains(t, sent[0].Body, order.ShortRef())
	assert.Contains(t, sent[0].Body, "Pensamento Computacional")

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeOrderCreated, published[0].Type)
}

func TestCreateOrderAlreadyOwned(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.user, &validator.CreateOrderRequest{CourseID: f.course.ID})
	require.NoError(t, err)

	_, err = f.service.Create(ctx, f.user, &validator.CreateOrderRequest{CourseID: f.course.ID})
	assert.ErrorIs(t, err, ErrCourseAlreadyOwned)
}

func TestCreateOrderMailFailureLeavesNoTrace(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	f.mailer.FailWith(errors.New("smtp indisponível"))

	_, err := f.service.Create(ctx, f.user, &validator.CreateOrderRequest{CourseID: f.course.ID})
	require.Error(t, err)

	// Nothing persisted: no access link, no counter bump, no order row.
	assert.False(t, f.user.OwnsCourse(f.course.ID))
	stored, err := f.repo.User().GetByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, stored.OwnsCourse(f.course.ID))

	course, err := f.repo.Course().GetByID(ctx, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, course.Purchased)

	orders, total, err := f.repo.Order().List(ctx, repositories.OrderFilters{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Zero(t, total)
	assert.Empty(t, f.publisher.GetPublishedEvents())
}

func TestCreateOrderDuplicateDetectedFromOrderRows(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	// An order row without the owned-courses link still counts as a
	// purchase.
	require.NoError(t, f.repo.Order().Create(ctx, &models.Order{
		UserID:    f.user.ID,
		CourseID:  f.course.ID,
		Reference: "11111111-2222-3333-4444-555555555555",
	}))
	require.False(t, f.user.OwnsCourse(f.course.ID))

	_, err := f.service.Create(ctx, f.user, &validator.CreateOrderRequest{CourseID: f.course.ID})
	assert.ErrorIs(t, err, ErrCourseAlreadyOwned)
	assert.Empty(t, f.mailer.SentMessages())
}

func TestCreateOrderUnknownCourse(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.Create(context.Background(), f.user, &validator.CreateOrderRequest{CourseID: 404})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestListOrdersFiltersByUser(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.user, &validator.CreateOrderRequest{CourseID: f.course.ID})
	require.NoError(t, err)

	other := &models.User{Name: "Bruno", Email: "bruno@example.com"}
	require.NoError(t, f.repo.User().Create(ctx, other))
	_, err = f.service.Create(ctx, other, &validator.CreateOrderRequest{CourseID: f.course.ID})
	require.NoError(t, err)

	orders, total, err := f.service.List(ctx, repositories.OrderFilters{UserID: &f.user.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, f.user.ID, orders[0].UserID)
}
