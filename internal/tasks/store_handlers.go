package tasks

import (
	"encoding/json"
	"net/http"
	"strconv"

	"taskrank-backend/internal/analytics"
	"taskrank-backend/internal/scoring"
)

// CreateTask handles POST /tasks: validate one task and persist it.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(in); err != nil {
		http.Error(w, validationMessage(err), http.StatusBadRequest)
		return
	}
	due, err := scoring.NormalizeDate(in.DueDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	store := &Store{DB: h.DB}
	created, err := store.Create(r.Context(), in, due)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	_ = analytics.Log(r.Context(), h.DB, analytics.FromRequest(r), "task_created", map[string]any{
		"task_id":          created.ID,
		"importance":       created.Importance,
		"dependency_count": len(created.Dependencies),
	}, analytics.SourceEventKeyFromRequest(r))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(created)
}

// ListTasks handles GET /tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	store := &Store{DB: h.DB}
	list, err := store.List(r.Context())
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []StoredTask{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// DeleteTask handles DELETE /tasks?id=N.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}

	store := &Store{DB: h.DB}
	existed, err := store.Delete(r.Context(), id)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !existed {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
}
