package tasks

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"taskrank-backend/internal/scoring"
)

// Store persists tasks between requests. Scores are never stored: they
// depend on "today" and would go stale, so stored tasks are re-scored on
// every analyze/suggest call.
type Store struct {
	DB *sql.DB
}

// Create inserts one validated task and returns the stored row.
func (s *Store) Create(ctx context.Context, in TaskInput, due time.Time) (StoredTask, error) {
	deps := in.Dependencies
	if deps == nil {
		deps = []int{}
	}
	depsJSON, err := json.Marshal(deps)
	if err != nil {
		return StoredTask{}, err
	}

	row := s.DB.QueryRowContext(ctx, `
		INSERT INTO tasks (title, due_date, estimated_hours, importance, dependencies)
		VALUES ($1, $2, $3, $4, $5::jsonb)
		RETURNING id, created_at
	`, in.Title, due, *in.EstimatedHours, *in.Importance, string(depsJSON))

	out := StoredTask{
		Title:          in.Title,
		DueDate:        due.Format(dueDateLayout),
		EstimatedHours: *in.EstimatedHours,
		Importance:     *in.Importance,
		Dependencies:   deps,
	}
	if err := row.Scan(&out.ID, &out.CreatedAt); err != nil {
		return StoredTask{}, err
	}
	return out, nil
}

// List returns all stored tasks, newest first.
func (s *Store) List(ctx context.Context) ([]StoredTask, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, title, due_date, estimated_hours, importance, dependencies, created_at
		FROM tasks
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredTask
	for rows.Next() {
		st, err := scanStoredTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Delete removes one task and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// LoadBatch reads the stored tasks in id order as one scoring batch.
func (s *Store) LoadBatch(ctx context.Context) ([]scoring.Task, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, title, due_date, estimated_hours, importance, dependencies, created_at
		FROM tasks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batch []scoring.Task
	for rows.Next() {
		st, err := scanStoredTask(rows)
		if err != nil {
			return nil, err
		}
		due, err := scoring.NormalizeDate(st.DueDate)
		if err != nil {
			return nil, err
		}
		hours := st.EstimatedHours
		importance := st.Importance
		batch = append(batch, scoring.Task{
			ID:             st.ID,
			Title:          st.Title,
			Due:            due,
			EstimatedHours: &hours,
			Importance:     &importance,
			Dependencies:   st.Dependencies,
		})
	}
	return batch, rows.Err()
}

func scanStoredTask(rows *sql.Rows) (StoredTask, error) {
	var (
		st      StoredTask
		due     time.Time
		depsRaw []byte
	)
	if err := rows.Scan(&st.ID, &st.Title, &due, &st.EstimatedHours, &st.Importance, &depsRaw, &st.CreatedAt); err != nil {
		return StoredTask{}, err
	}
	st.DueDate = due.Format(dueDateLayout)
	st.Dependencies = decodeDeps(depsRaw)
	return st, nil
}

// decodeDeps tolerates hand-written jsonb: non-integer entries are dropped,
// anything unreadable degrades to an empty list.
func decodeDeps(raw []byte) []int {
	var vals []any
	if err := json.Unmarshal(raw, &vals); err != nil {
		return []int{}
	}
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		if id, ok := scoring.IntFromAny(v); ok {
			out = append(out, id)
		}
	}
	return out
}
