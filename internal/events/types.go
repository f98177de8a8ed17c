package events

// Domain event types.
const (
	TypeUserActivated    = "user.activated"
	TypeOrderCreated     = "order.created"
	TypeQuestionAnswered = "course.question_answered"
	TypeReviewAdded      = "course.review_added"
)

// UserActivatedEvent is emitted once a registration is confirmed.
type UserActivatedEvent struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// OrderCreatedEvent is emitted after an order is recorded.
type OrderCreatedEvent struct {
	OrderID  string  `json:"order_id"`
	UserID   uint    `json:"user_id"`
	CourseID uint    `json:"course_id"`
	Price    float64 `json:"price"`
}

// QuestionAnsweredEvent is emitted when a course question receives a reply.
type QuestionAnsweredEvent struct {
	CourseID   uint `json:"course_id"`
	SectionID  uint `json:"section_id"`
	QuestionID uint `json:"question_id"`
	AnswererID uint `json:"answerer_id"`
}

// ReviewAddedEvent is emitted when a review is attached to a course.
type ReviewAddedEvent struct {
	CourseID uint    `json:"course_id"`
	UserID   uint    `json:"user_id"`
	Rating   float64 `json:"rating"`
}
