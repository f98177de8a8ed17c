package models

import (
	"time"

	"gorm.io/datatypes"
)

const DefaultPostAuthor = "Equipe Pensamento Computacional"

type Post struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Title      string         `json:"title" gorm:"not null;size:200"`
	Slug       string         `json:"slug" gorm:"uniqueIndex;not null;size:220"`
	Content    string         `json:"content" gorm:"type:text;not null"`
	Excerpt    string         `json:"excerpt" gorm:"type:text;not null"`
	CoverImage string         `json:"coverImage" gorm:"size:500"`
	Author     string         `json:"author" gorm:"not null;size:100"`
	Tags       datatypes.JSON `json:"tags" gorm:"type:jsonb"`

	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
