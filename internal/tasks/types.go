package tasks

import (
	"time"

	"taskrank-backend/internal/scoring"
)

// TaskInput is one task object as submitted by the client. Pointer fields
// let the validator tell "missing" apart from zero.
type TaskInput struct {
	ID             int      `json:"id,omitempty"`
	Title          string   `json:"title" validate:"required"`
	DueDate        string   `json:"due_date" validate:"required"`
	EstimatedHours *float64 `json:"estimated_hours" validate:"required,gte=0"`
	Importance     *int     `json:"importance" validate:"required,min=1,max=10"`
	Dependencies   []int    `json:"dependencies,omitempty"`
}

// ScoredTask is one entry of an analyze/suggest response.
type ScoredTask struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int   `json:"dependencies,omitempty"`
	Score          float64 `json:"score"`
	Explanation    string  `json:"explanation,omitempty"`
}

// StoredTask is a persisted task row.
type StoredTask struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	DueDate        string    `json:"due_date"`
	EstimatedHours float64   `json:"estimated_hours"`
	Importance     int       `json:"importance"`
	Dependencies   []int     `json:"dependencies"`
	CreatedAt      time.Time `json:"created_at"`
}

const dueDateLayout = "2006-01-02"

func newScoredTask(t scoring.Task, score float64) ScoredTask {
	out := ScoredTask{
		ID:           t.ID,
		Title:        t.Title,
		DueDate:      t.Due.Format(dueDateLayout),
		Importance:   1,
		Dependencies: t.Dependencies,
		Score:        score,
	}
	if t.EstimatedHours != nil {
		out.EstimatedHours = *t.EstimatedHours
	}
	if t.Importance != nil {
		out.Importance = *t.Importance
	}
	return out
}
