package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/pensacomp/lms-service/internal/models"
	"github.com/pensacomp/lms-service/internal/repositories"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) repositories.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return handleDBError(err, "create course")
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, handleDBError(err, "get course by id")
	}
	return &course, nil
}

// GetWithContent loads the whole aggregate. Children are ordered by id so
// section and reply order is stable across loads.
func (r *courseRepository) GetWithContent(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("course_sections.id") }).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("course_questions.id") }).
		Preload("Sections.Questions.Replies", func(db *gorm.DB) *gorm.DB { return db.Order("question_replies.id") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("course_reviews.id") }).
		Preload("Reviews.Replies", func(db *gorm.DB) *gorm.DB { return db.Order("review_replies.id") }).
		First(&course, id).Error; err != nil {
		return nil, handleDBError(err, "get course with content")
	}
	return &course, nil
}

// List loads the catalog with sections so the public projection keeps the
// section outline. Q&A threads are not needed there and stay unloaded.
func (r *courseRepository) List(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	if err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("course_sections.id") }).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, handleDBError(err, "list courses")
	}
	return courses, nil
}

// Save persists the aggregate including children added or changed in memory.
func (r *courseRepository) Save(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(course).Error; err != nil {
		return handleDBError(err, "save course aggregate")
	}
	return nil
}

// ReplaceSections deletes the current section rows and inserts the new list
// in one transaction. Questions and replies hang off sections, so cascade
// removes them with their parents.
func (r *courseRepository) ReplaceSections(ctx context.Context, courseID uint, sections []models.CourseSection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&models.CourseSection{}).Error; err != nil {
			return handleDBError(err, "delete course sections")
		}
		for i := range sections {
			sections[i].ID = 0
			sections[i].CourseID = courseID
		}
		if len(sections) > 0 {
			if err := tx.Create(&sections).Error; err != nil {
				return handleDBError(err, "insert course sections")
			}
		}
		return nil
	})
}

// Update persists only the course row, leaving children untouched.
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).
		Omit("Sections", "Reviews").
		Save(course).Error; err != nil {
		return handleDBError(err, "update course")
	}
	return nil
}
