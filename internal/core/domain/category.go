package domain

import "time"

// Category is a unique-by-name tag grouping tasks. Categories record creation
// time only; they carry no updated_at.
type Category struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
