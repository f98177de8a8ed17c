package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Media is a reference to an externally hosted asset (avatar, thumbnail).
// The platform never uploads files itself; it only stores the reference.
type Media struct {
	PublicID string `json:"public_id" gorm:"size:255"`
	URL      string `json:"url" gorm:"size:500"`
}

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"size:255"` // bcrypt hash; empty for social-auth accounts
	Avatar   Media    `json:"avatar" gorm:"embedded;embeddedPrefix:avatar_"`
	Role     UserRole `json:"role" gorm:"default:user;size:20"`

	IsVerified bool `json:"isVerified" gorm:"default:false"`

	// Owned courses as weak links; existence in the list implies purchase.
	Courses []UserCourse `json:"courses" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserCourse struct {
	ID       uint `json:"-" gorm:"primaryKey"`
	UserID   uint `json:"-" gorm:"not null;index"`
	CourseID uint `json:"courseId" gorm:"not null;index"`
}

func (User) TableName() string {
	return "users"
}

func (UserCourse) TableName() string {
	return "user_courses"
}

// OwnsCourse reports whether the course id is in the user's owned list.
func (u *User) OwnsCourse(courseID uint) bool {
	for _, c := range u.Courses {
		if c.CourseID == courseID {
			return true
		}
	}
	return false
}

// UserSnapshot is the denormalized identity copy embedded into questions,
// answers, reviews and replies at write time. Later profile edits never
// update historical snapshots.
type UserSnapshot struct {
	ID     uint     `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Avatar Media    `json:"avatar"`
	Role   UserRole `json:"role"`
}

// Snapshot freezes the user's identity fields for embedding.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Role:   u.Role,
	}
}

// SnapshotJSON marshals the snapshot into a JSON column value.
func (u *User) SnapshotJSON() datatypes.JSON {
	data, _ := json.Marshal(u.Snapshot())
	return datatypes.JSON(data)
}
