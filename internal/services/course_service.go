package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/pensacomp/lms-service/internal/cache"
	"github.com/pensacomp/lms-service/internal/events"
	"github.com/pensacomp/lms-service/internal/mail"
	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	courses   *cache.CourseStore
	mailer    mail.Mailer
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(
	repo repositories.Repository,
	courses *cache.CourseStore,
	mailer mail.Mailer,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) CourseService {
	return &courseService{
		repo:      repo,
		courses:   courses,
		mailer:    mailer,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *courseService) Create(ctx context.Context, req *validator.CourseRequest) (*models.Course, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	course := s.buildCourse(req)
	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, NewInternalError(err)
	}

	s.logger.Info("course created", "course_id", course.ID, "name", course.Name)
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id uint, req *validator.CourseRequest) (*models.Course, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	course, err := s.loadCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	s.applyCourseFields(course, req)
	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, NewInternalError(err)
	}

	if req.Sections != nil {
		sections := buildSections(req.Sections)
		if err := s.repo.Course().ReplaceSections(ctx, id, sections); err != nil {
			return nil, NewInternalError(err)
		}
	}

	s.invalidate(ctx, id)
	s.logger.Info("course updated", "course_id", id)

	return s.repo.Course().GetWithContent(ctx, id)
}

// GetPublic serves the catalog view: the cached aggregate with paid section
// content stripped.
func (s *courseService) GetPublic(ctx context.Context, id uint) (*models.Course, error) {
	if cached, err := s.courses.Get(ctx, id); err == nil {
		return cached, nil
	}

	course, err := s.repo.Course().GetWithContent(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, NewInternalError(err)
	}

	stripPaidContent(course)

	if err := s.courses.Set(ctx, id, course); err != nil {
		s.logger.Warn("failed to cache course", "course_id", id, "error", err)
	}

	return course, nil
}

func (s *courseService) ListPublic(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, NewInternalError(err)
	}
	for _, course := range courses {
		stripPaidContent(course)
	}
	return courses, nil
}

func (s *courseService) GetContent(ctx context.Context, courseID uint, user *models.User) ([]models.CourseSection, error) {
	if user.Role != models.RoleAdmin && !user.OwnsCourse(courseID) {
		return nil, ErrCourseNotOwned
	}

	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return course.Sections, nil
}

func (s *courseService) AddQuestion(ctx context.Context, user *models.User, req *validator.AddQuestionRequest) (*models.Course, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	course, err := s.loadCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	section := course.SectionByID(req.ContentID)
	if section == nil {
		return nil, ErrInvalidContent
	}

	section.Questions = append(section.Questions, models.CourseQuestion{
		SectionID: section.ID,
		User:      user.SnapshotJSON(),
		Question:  req.Question,
	})

	if err := s.repo.Course().Save(ctx, course); err != nil {
		return nil, NewInternalError(err)
	}

	s.invalidate(ctx, course.ID)
	s.logger.Info("question added", "course_id", course.ID, "section_id", section.ID, "user_id", user.ID)
	return course, nil
}

func (s *courseService) AddAnswer(ctx context.Context, user *models.User, req *validator.AddAnswerRequest) (*models.Course, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	course, err := s.loadCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	section := course.SectionByID(req.ContentID)
	if section == nil {
		return nil, ErrInvalidContent
	}
	question := section.QuestionByID(req.QuestionID)
	if question == nil {
		return nil, ErrInvalidContent
	}

	question.Replies = append(question.Replies, models.QuestionReply{
		QuestionID: question.ID,
		User:       user.SnapshotJSON(),
		Answer:     req.Answer,
	})

	if err := s.repo.Course().Save(ctx, course); err != nil {
		return nil, NewInternalError(err)
	}

	if err := s.notifyAsker(question, user, course.Name, section.Title); err != nil {
		s.logger.Error("failed to send answer notification", "question_id", question.ID, "error", err)
		return nil, NewInternalError(err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.TypeQuestionAnswered, events.QuestionAnsweredEvent{
		CourseID:   course.ID,
		SectionID:  section.ID,
		QuestionID: question.ID,
		AnswererID: user.ID,
	}))

	s.invalidate(ctx, course.ID)
	return course, nil
}

func (s *courseService) AddReview(ctx context.Context, user *models.User, courseID uint, req *validator.AddReviewRequest) (*models.Course, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	if user.Role != models.RoleAdmin && !user.OwnsCourse(courseID) {
		return nil, ErrCourseNotOwned
	}

	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	course.Reviews = append(course.Reviews, models.CourseReview{
		CourseID: course.ID,
		User:     user.SnapshotJSON(),
		Rating:   req.Rating,
		Comment:  req.Review,
	})
	course.RecomputeRatings()

	if err := s.repo.Course().Save(ctx, course); err != nil {
		return nil, NewInternalError(err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.NewEvent(events.TypeReviewAdded, events.ReviewAddedEvent{
		CourseID: course.ID,
		UserID:   user.ID,
		Rating:   req.Rating,
	}))

	s.invalidate(ctx, course.ID)
	s.logger.Info("review added", "course_id", course.ID, "user_id", user.ID, "rating", req.Rating)
	return course, nil
}

func (s *courseService) AddReviewReply(ctx context.Context, user *models.User, req *validator.AddReplyRequest) (*models.Course, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	course, err := s.loadCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	review := course.ReviewByID(req.ReviewID)
	if review == nil {
		return nil, ErrReviewNotFound
	}

	review.Replies = append(review.Replies, models.ReviewReply{
		ReviewID: review.ID,
		User:     user.SnapshotJSON(),
		Comment:  req.Comment,
	})

	if err := s.repo.Course().Save(ctx, course); err != nil {
		return nil, NewInternalError(err)
	}

	s.invalidate(ctx, course.ID)
	return course, nil
}

func (s *courseService) loadCourse(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetWithContent(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, NewInternalError(err)
	}
	return course, nil
}

// notifyAsker mails the question's author, unless they answered their own
// question. A failed send fails the request.
func (s *courseService) notifyAsker(question *models.CourseQuestion, answerer *models.User, courseName, sectionTitle string) error {
	var asker models.UserSnapshot
	if err := json.Unmarshal(question.User, &asker); err != nil {
		return fmt.Errorf("decode asker snapshot for question %d: %w", question.ID, err)
	}
	if asker.ID == answerer.ID {
		return nil
	}

	return s.mailer.Send(mail.QuestionReplyMail(asker.Email, asker.Name, courseName, sectionTitle))
}

func (s *courseService) invalidate(ctx context.Context, courseID uint) {
	if err := s.courses.Delete(ctx, courseID); err != nil {
		s.logger.Warn("failed to invalidate course cache", "course_id", courseID, "error", err)
	}
}

func (s *courseService) buildCourse(req *validator.CourseRequest) *models.Course {
	course := &models.Course{
		Sections: buildSections(req.Sections),
	}
	s.applyCourseFields(course, req)
	return course
}

func (s *courseService) applyCourseFields(course *models.Course, req *validator.CourseRequest) {
	course.Name = req.Name
	course.Description = req.Description
	course.Price = req.Price
	course.EstimatedPrice = req.EstimatedPrice
	course.Tags = req.Tags
	course.Level = req.Level
	course.DemoURL = req.DemoURL
	course.Benefits = toJSON(req.Benefits)
	course.Prerequisites = toJSON(req.Prerequisites)
	if req.Thumbnail != nil {
		course.Thumbnail = *req.Thumbnail
	}
}

func buildSections(reqs []validator.CourseSectionRequest) []models.CourseSection {
	sections := make([]models.CourseSection, 0, len(reqs))
	for _, r := range reqs {
		sections = append(sections, models.CourseSection{
			Title:       r.Title,
			Description: r.Description,
			VideoURL:    r.VideoURL,
			VideoLength: r.VideoLength,
			VideoPlayer: r.VideoPlayer,
			Suggestion:  r.Suggestion,
			Links:       toJSON(r.Links),
		})
	}
	return sections
}

// stripPaidContent clears the fields paying customers get: video sources,
// instructor suggestions, per-section links and the Q&A threads.
func stripPaidContent(course *models.Course) {
	for i := range course.Sections {
		course.Sections[i].VideoURL = ""
		course.Sections[i].Suggestion = ""
		course.Sections[i].Links = nil
		course.Sections[i].Questions = nil
	}
}

func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
