package handler

import "github.com/tasksea/marketplace-api/internal/core/ports"

// --- Request types ---

// createTaskRequest carries a new task posting. Required-field validation is
// the service's job so the error can enumerate every missing field at once.
type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	CategoryID  string  `json:"category_id"`
}

// updateTaskRequest is a partial update; absent fields are left untouched.
type updateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Location    *string  `json:"location"`
	Status      *string  `json:"status"`
	CategoryID  *string  `json:"category_id"`
}

// --- Response envelopes ---

// The view types in ports carry the JSON contract; handlers only wrap them.

type taskResponse struct {
	Task ports.TaskSummary `json:"task"`
}

type taskDetailResponse struct {
	Task ports.TaskDetail `json:"task"`
}

type listTasksResponse struct {
	Data       []ports.TaskSummary `json:"data"`
	Pagination ports.Pagination    `json:"pagination"`
}

type listTaskDetailsResponse struct {
	Count int                `json:"count"`
	Tasks []ports.TaskDetail `json:"tasks"`
}

type messageResponse struct {
	Message string `json:"message"`
}
