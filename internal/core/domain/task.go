package domain

import "time"

// TaskStatus represents the lifecycle state of a posted task.
type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "open"
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// validTaskTransitions defines the allowed state machine transitions.
// completed and cancelled are terminal.
var validTaskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusOpen:     {TaskStatusAssigned, TaskStatusCompleted, TaskStatusCancelled},
	TaskStatusAssigned: {TaskStatusCompleted, TaskStatusCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range validTaskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether s is one of the canonical task statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusAssigned, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// Task is the central marketplace entity: a paid micro-task posted by a user.
// PosterID owns the task for mutation purposes; anyone may read it.
type Task struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Price       float64    `json:"price" bson:"price"`
	Location    string     `json:"location" bson:"location"`
	Status      TaskStatus `json:"status" bson:"status"`
	PosterID    string     `json:"user_id" bson:"user_id"`
	CategoryID  string     `json:"category_id" bson:"category_id"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}
