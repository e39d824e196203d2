package domain

import "time"

// Review records a rating given by one user to another over a completed task.
// The entity is persisted but no marketplace operation drives it yet.
type Review struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	TaskID     string    `json:"task_id" bson:"task_id"`
	ReviewerID string    `json:"reviewer_id" bson:"reviewer_id"`
	RevieweeID string    `json:"reviewee_id" bson:"reviewee_id"`
	Rating     int       `json:"rating" bson:"rating"` // 1..5
	Comment    string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
