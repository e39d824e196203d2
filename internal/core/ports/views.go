package ports

import "time"

// UserSummary is the embedded view of a user inside task and application
// responses (never exposes the password hash or role).
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CategorySummary is the embedded view of a category.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskSummary is a task with its poster and category resolved.
type TaskSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Poster   UserSummary     `json:"poster"`
	Category CategorySummary `json:"category"`
}

// ApplicationSummary is an application with its applicant resolved.
type ApplicationSummary struct {
	ID        string      `json:"id"`
	Message   string      `json:"message,omitempty"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Applicant UserSummary `json:"applicant"`
}

// TaskDetail is the full task view: summary plus all applications.
type TaskDetail struct {
	TaskSummary
	Applications []ApplicationSummary `json:"applications"`
}

// ApplicationWithTask is the "my applications" view: the application plus the
// task it targets (with poster and category resolved).
type ApplicationWithTask struct {
	ID        string      `json:"id"`
	Message   string      `json:"message,omitempty"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Task      TaskSummary `json:"task"`
}

// Pagination describes one page of a list result.
type Pagination struct {
	TotalCount  int64 `json:"total_count"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"total_pages"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// NewPagination derives the page bookkeeping from a total count.
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
