package domain

import "time"

// ApplicationStatus represents the outcome of a task application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsDecision reports whether s is a valid poster decision (accepted or rejected).
func (s ApplicationStatus) IsDecision() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// Application is one user's claim to perform one task. At most one application
// exists per (task, applicant) pair; the store enforces this with a unique index.
type Application struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	TaskID      string            `json:"task_id" bson:"task_id"`
	ApplicantID string            `json:"applicant_id" bson:"applicant_id"`
	Message     string            `json:"message,omitempty" bson:"message,omitempty"`
	Status      ApplicationStatus `json:"status" bson:"status"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}
