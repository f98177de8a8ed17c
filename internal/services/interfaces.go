package services

import (
	"context"

	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/validator"
)

// AuthTokens is the signed pair returned by login, social auth and refresh.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegistrationResult carries the activation token the client must echo back
// together with the mailed 4-digit code.
type RegistrationResult struct {
	ActivationToken string `json:"activationToken"`
}

// UserService implements registration, session and profile operations.
type UserService interface {
	Register(ctx context.Context, req *validator.RegistrationRequest) (*RegistrationResult, error)
	Activate(ctx context.Context, req *validator.ActivationRequest) (*models.User, error)
	Login(ctx context.Context, req *validator.LoginRequest) (*models.User, *AuthTokens, error)
	SocialAuth(ctx context.Context, req *validator.SocialAuthRequest) (*models.User, *AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*models.User, *AuthTokens, error)
	Logout(ctx context.Context, userID uint) error

	GetByID(ctx context.Context, userID uint) (*models.User, error)
	UpdateInfo(ctx context.Context, userID uint, req *validator.UpdateUserInfoRequest) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, req *validator.UpdatePasswordRequest) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID uint, req *validator.UpdateAvatarRequest) (*models.User, error)
}

// CourseService implements catalog and interaction operations.
type CourseService interface {
	Create(ctx context.Context, req *validator.CourseRequest) (*models.Course, error)
	Update(ctx context.Context, id uint, req *validator.CourseRequest) (*models.Course, error)

	// GetPublic returns the cacheable projection with paid content stripped.
	GetPublic(ctx context.Context, id uint) (*models.Course, error)
	ListPublic(ctx context.Context) ([]*models.Course, error)

	// GetContent returns the full section list; the caller must own the
	// course unless they are an admin.
	GetContent(ctx context.Context, courseID uint, user *models.User) ([]models.CourseSection, error)

	AddQuestion(ctx context.Context, user *models.User, req *validator.AddQuestionRequest) (*models.Course, error)
	AddAnswer(ctx context.Context, user *models.User, req *validator.AddAnswerRequest) (*models.Course, error)
	AddReview(ctx context.Context, user *models.User, courseID uint, req *validator.AddReviewRequest) (*models.Course, error)
	AddReviewReply(ctx context.Context, user *models.User, req *validator.AddReplyRequest) (*models.Course, error)
}

// OrderService records purchases and grants course access.
type OrderService interface {
	Create(ctx context.Context, user *models.User, req *validator.CreateOrderRequest) (*models.Order, error)
	List(ctx context.Context, filters repositories.OrderFilters) ([]*models.Order, int64, error)
}

// PostService implements the blog, addressed by slug.
type PostService interface {
	Create(ctx context.Context, req *validator.PostCreateRequest) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, filters repositories.PostFilters) ([]*models.Post, int64, error)
	Update(ctx context.Context, slug string, req *validator.PostUpdateRequest) (*models.Post, error)
	Delete(ctx context.Context, slug string) error
}

// ReportService produces spreadsheet exports for back-office use.
type ReportService interface {
	OrdersReport(ctx context.Context) ([]byte, error)
}
