package validator

import "github.com/pensacomp/lms-service/internal/models"

// ===== AUTH / USER =====

type RegistrationRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type ActivationRequest struct {
	ActivationToken string `json:"activation_token" validate:"required"`
	ActivationCode  string `json:"activation_code" validate:"required,len=4"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SocialAuthRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name" validate:"required,min=2,max=100"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

type UpdateUserInfoRequest struct {
	Name string `json:"name" validate:"omitempty,min=2,max=100"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type UpdateAvatarRequest struct {
	Avatar models.Media `json:"avatar" validate:"required"`
}

// ===== COURSE =====

type CourseLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type TitledItem struct {
	Title string `json:"title" validate:"required"`
}

type CourseSectionRequest struct {
	Title       string       `json:"title" validate:"required,max=200"`
	Description string       `json:"description"`
	VideoURL    string       `json:"videoUrl" validate:"omitempty,max=500"`
	VideoLength int          `json:"videoLength" validate:"omitempty,min=0"`
	VideoPlayer string       `json:"videoPlayer" validate:"omitempty,max=50"`
	Suggestion  string       `json:"suggestion"`
	Links       []CourseLink `json:"links"`
}

type CourseRequest struct {
	Name           string                 `json:"name" validate:"required,max=200"`
	Description    string                 `json:"description" validate:"required"`
	Price          float64                `json:"price" validate:"required,min=0"`
	EstimatedPrice float64                `json:"estimatedPrice" validate:"omitempty,min=0"`
	Thumbnail      *models.Media          `json:"thumbnail"`
	Tags           string                 `json:"tags" validate:"omitempty,max=255"`
	Level          string                 `json:"level" validate:"omitempty,max=50"`
	DemoURL        string                 `json:"demoUrl" validate:"omitempty,max=500"`
	Benefits       []TitledItem           `json:"benefits" validate:"omitempty,dive"`
	Prerequisites  []TitledItem           `json:"prerequisites" validate:"omitempty,dive"`
	Sections       []CourseSectionRequest `json:"courseData" validate:"omitempty,dive"`
}

type AddQuestionRequest struct {
	CourseID  uint   `json:"courseId" validate:"required"`
	ContentID uint   `json:"contentId" validate:"required"`
	Question  string `json:"question" validate:"required,max=2000"`
}

type AddAnswerRequest struct {
	CourseID   uint   `json:"courseId" validate:"required"`
	ContentID  uint   `json:"contentId" validate:"required"`
	QuestionID uint   `json:"questionId" validate:"required"`
	Answer     string `json:"answer" validate:"required,max=2000"`
}

type AddReviewRequest struct {
	Rating float64 `json:"rating" validate:"required,rating"`
	Review string  `json:"review" validate:"required,max=2000"`
}

type AddReplyRequest struct {
	CourseID uint   `json:"courseId" validate:"required"`
	ReviewID uint   `json:"reviewId" validate:"required"`
	Comment  string `json:"comment" validate:"required,max=2000"`
}

// ===== ORDER =====

type CreateOrderRequest struct {
	CourseID    uint        `json:"courseId" validate:"required"`
	PaymentInfo interface{} `json:"payment_info"`
}

// ===== BLOG =====

type PostCreateRequest struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Content    string   `json:"content" validate:"required"`
	Excerpt    string   `json:"excerpt" validate:"required"`
	CoverImage string   `json:"coverImage" validate:"omitempty,max=500"`
	Author     string   `json:"author" validate:"omitempty,max=100"`
	Tags       []string `json:"tags"`
}

type PostUpdateRequest struct {
	Title      *string  `json:"title" validate:"omitempty,max=200"`
	Content    *string  `json:"content"`
	Excerpt    *string  `json:"excerpt"`
	CoverImage *string  `json:"coverImage" validate:"omitempty,max=500"`
	Author     *string  `json:"author" validate:"omitempty,max=100"`
	Tags       []string `json:"tags"`
}
