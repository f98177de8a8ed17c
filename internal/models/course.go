package models

import (
	"time"

	"gorm.io/datatypes"
)

// Course is the aggregate root for the catalog entry. Sections, questions,
// reviews and replies have no independent lifecycle: they are created,
// mutated and deleted only through a parent course write.
type Course struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	Name           string  `json:"name" gorm:"not null;size:200;index"`
	Description    string  `json:"description" gorm:"type:text"`
	Price          float64 `json:"price" gorm:"not null"`
	EstimatedPrice float64 `json:"estimatedPrice"`
	Thumbnail      Media   `json:"thumbnail" gorm:"embedded;embeddedPrefix:thumbnail_"`
	Tags           string  `json:"tags" gorm:"size:255"`
	Level          string  `json:"level" gorm:"size:50"`
	DemoURL        string  `json:"demoUrl" gorm:"size:500"`

	// Titled bullet lists shown on the course page.
	Benefits      datatypes.JSON `json:"benefits" gorm:"type:jsonb"`
	Prerequisites datatypes.JSON `json:"prerequisites" gorm:"type:jsonb"`

	Sections []CourseSection `json:"courseData" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Reviews  []CourseReview  `json:"reviews" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`

	// Derived: arithmetic mean of all review ratings, recomputed on every
	// review insertion. 0 when the course has no reviews.
	Ratings   float64 `json:"ratings" gorm:"default:0"`
	Purchased int     `json:"purchased" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CourseSection struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CourseID    uint   `json:"-" gorm:"not null;index"`
	Title       string `json:"title" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"type:text"`
	VideoURL    string `json:"videoUrl" gorm:"size:500"`
	VideoLength int    `json:"videoLength"`
	VideoPlayer string `json:"videoPlayer" gorm:"size:50"`
	Suggestion  string `json:"suggestion" gorm:"type:text"`

	// Ordered [{title, url}] list.
	Links datatypes.JSON `json:"links" gorm:"type:jsonb"`

	Questions []CourseQuestion `json:"questions" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

type CourseQuestion struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	SectionID uint           `json:"-" gorm:"not null;index"`
	User      datatypes.JSON `json:"user" gorm:"type:jsonb"` // asking-user snapshot
	Question  string         `json:"question" gorm:"type:text;not null"`

	Replies []QuestionReply `json:"questionReplies" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

type QuestionReply struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	QuestionID uint           `json:"-" gorm:"not null;index"`
	User       datatypes.JSON `json:"user" gorm:"type:jsonb"` // answering-user snapshot
	Answer     string         `json:"answer" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CourseReview struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	CourseID uint           `json:"-" gorm:"not null;index"`
	User     datatypes.JSON `json:"user" gorm:"type:jsonb"` // reviewing-user snapshot
	Rating   float64        `json:"rating" gorm:"not null"`
	Comment  string         `json:"comment" gorm:"type:text"`

	Replies []ReviewReply `json:"commentReplies" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

type ReviewReply struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	ReviewID uint           `json:"-" gorm:"not null;index"`
	User     datatypes.JSON `json:"user" gorm:"type:jsonb"`
	Comment  string         `json:"comment" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Course) TableName() string         { return "courses" }
func (CourseSection) TableName() string  { return "course_sections" }
func (CourseQuestion) TableName() string { return "course_questions" }
func (QuestionReply) TableName() string  { return "question_replies" }
func (CourseReview) TableName() string   { return "course_reviews" }
func (ReviewReply) TableName() string    { return "review_replies" }

// SectionByID looks up a section in the loaded aggregate.
func (c *Course) SectionByID(id uint) *CourseSection {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i]
		}
	}
	return nil
}

// QuestionByID looks up a question within the section.
func (s *CourseSection) QuestionByID(id uint) *CourseQuestion {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// ReviewByID looks up a review in the loaded aggregate.
func (c *Course) ReviewByID(id uint) *CourseReview {
	for i := range c.Reviews {
		if c.Reviews[i].ID == id {
			return &c.Reviews[i]
		}
	}
	return nil
}

// RecomputeRatings sets Ratings to the mean of all attached review ratings.
// Guarded against an empty review list: an undefined average is not a valid
// rating, so the placeholder is 0.
func (c *Course) RecomputeRatings() {
	if len(c.Reviews) == 0 {
		c.Ratings = 0
		return
	}
	var sum float64
	for _, rev := range c.Reviews {
		sum += rev.Rating
	}
	c.Ratings = sum / float64(len(c.Reviews))
}
