package storage

// On-disk records. Field names follow the persisted JSON layout so data
// written by earlier clients keeps loading.

type todoRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	ProjectID   string `json:"projectId,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Order       int    `json:"order"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type projectRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type filterRecord struct {
	Status       string `json:"status,omitempty"`
	Priority     string `json:"priority,omitempty"`
	ProjectID    string `json:"projectId,omitempty"`
	Search       string `json:"search,omitempty"`
	DueDateRange string `json:"dueDateRange,omitempty"`
	DueFrom      string `json:"dueFrom,omitempty"`
	DueTo        string `json:"dueTo,omitempty"`
}

type savedFilterRecord struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Filter    filterRecord `json:"filter"`
	CreatedAt string       `json:"createdAt"`
	UpdatedAt string       `json:"updatedAt"`
}

type activityRecord struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Timestamp   string         `json:"timestamp"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type userRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}
