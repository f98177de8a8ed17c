package repositories

import (
	"context"
	"errors"

	"github.com/pensacomp/lms-service/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned on unique constraint violations.
var ErrDuplicate = errors.New("duplicate record")

// ===== SHARED FILTER STRUCTS =====

type OrderFilters struct {
	UserID   *uint
	CourseID *uint
	Limit    int
	Offset   int
}

type PostFilters struct {
	Tag    string
	Limit  int
	Offset int
}

// UserRepository handles user accounts and their course ownership links.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AddCourse(ctx context.Context, userID, courseID uint) error
}

// CourseRepository handles the course aggregate: the course row plus its
// sections, questions, reviews and replies.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	// GetByID loads the bare course row without nested collections.
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	// GetWithContent loads the full aggregate.
	GetWithContent(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	// Save persists the whole aggregate including modified children.
	Save(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	// ReplaceSections swaps the course's section list wholesale.
	ReplaceSections(ctx context.Context, courseID uint, sections []models.CourseSection) error
}

// OrderRepository records purchases.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	List(ctx context.Context, filters OrderFilters) ([]*models.Order, int64, error)
	ExistsByUserAndCourse(ctx context.Context, userID, courseID uint) (bool, error)
}

// PostRepository handles blog posts addressed by slug.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, filters PostFilters) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	DeleteBySlug(ctx context.Context, slug string) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
