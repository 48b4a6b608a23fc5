package models

// NameMinLength and NameMaxLength bound list and todo names, in characters
const (
	NameMinLength = 1
	NameMaxLength = 100
)

// List represents a named list containing todos
type List struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:text;not null" json:"name"`
	Todos []Todo `gorm:"foreignKey:ListID" json:"todos"`
}

// TableName pins the table name to the persisted schema
func (List) TableName() string {
	return "lists"
}

// Counts returns the aggregate todo counts for the list
func (l *List) Counts() Counts {
	return ComputeCounts(l.Todos)
}

// IsComplete reports whether the list has at least one todo and none remaining
func (l *List) IsComplete() bool {
	return l.Counts().Complete()
}

// Summary returns the list without its todos, carrying the aggregate counts
func (l *List) Summary() ListSummary {
	counts := l.Counts()
	return ListSummary{
		ID:                  l.ID,
		Name:                l.Name,
		TodosCount:          counts.Total,
		TodosRemainingCount: counts.Remaining,
	}
}

// Todo represents a todo item within a list
type Todo struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	ListID    int    `gorm:"not null;index" json:"listId"`
	Name      string `gorm:"type:text;not null" json:"name"`
	Completed bool   `gorm:"default:false" json:"completed"`
}

// TableName pins the table name to the persisted schema
func (Todo) TableName() string {
	return "todos"
}

// ListSummary is a list row with aggregate todo counts, as shown on the index page
type ListSummary struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	TodosCount          int    `json:"todosCount"`
	TodosRemainingCount int    `json:"todosRemainingCount"`
}

// IsComplete reports whether the summarised list has at least one todo and none remaining
func (s ListSummary) IsComplete() bool {
	return Counts{Total: s.TodosCount, Remaining: s.TodosRemainingCount}.Complete()
}

// Counts holds the derived todo totals of a list
type Counts struct {
	Total     int
	Remaining int
}

// Complete reports whether a list with these counts is done
func (c Counts) Complete() bool {
	return c.Total >= 1 && c.Remaining == 0
}

// ComputeCounts derives the todo totals from a todo collection
func ComputeCounts(todos []Todo) Counts {
	counts := Counts{Total: len(todos)}
	for _, todo := range todos {
		if !todo.Completed {
			counts.Remaining++
		}
	}
	return counts
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MessageResponse wraps a payload with the user-facing outcome message
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse is a single list with its derived fields
type ListResponse struct {
	List
	TodosCount          int  `json:"todosCount"`
	TodosRemainingCount int  `json:"todosRemainingCount"`
	Complete            bool `json:"complete"`
}

// NewListResponse builds the response view of a list
func NewListResponse(list *List) ListResponse {
	counts := list.Counts()
	todos := list.Todos
	if todos == nil {
		todos = []Todo{}
	}
	resp := ListResponse{
		List:                *list,
		TodosCount:          counts.Total,
		TodosRemainingCount: counts.Remaining,
		Complete:            counts.Complete(),
	}
	resp.Todos = todos
	return resp
}

// ListSummaryResponse is a summary row with its completion flag
type ListSummaryResponse struct {
	ListSummary
	Complete bool `json:"complete"`
}

// NewListSummaryResponses builds the response view of the list index
func NewListSummaryResponses(summaries []ListSummary) []ListSummaryResponse {
	out := make([]ListSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ListSummaryResponse{ListSummary: s, Complete: s.IsComplete()})
	}
	return out
}
