package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order links a user to a purchased course. The duplicate check happens by
// scanning the user's owned-courses list and the order table before insert;
// there is no unique constraint on (user_id, course_id), matching the
// source system.
type Order struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	CourseID uint `json:"courseId" gorm:"not null;index"`
	UserID   uint `json:"userId" gorm:"not null;index"`

	// Reference is a generated opaque id; its first characters are quoted
	// back to the buyer in the confirmation mail.
	Reference string `json:"reference" gorm:"size:36;uniqueIndex"`

	// Opaque payment gateway payload.
	PaymentInfo datatypes.JSON `json:"payment_info" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// ShortRef returns the short order reference quoted in mails.
func (o *Order) ShortRef() string {
	if len(o.Reference) < 6 {
		return o.Reference
	}
	return o.Reference[:6]
}
