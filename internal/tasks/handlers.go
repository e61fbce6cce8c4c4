package tasks

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"taskrank-backend/internal/analytics"
	"taskrank-backend/internal/scoring"
)

// Handler serves the analyze/suggest pipeline and, when a database is
// configured, the persisted task endpoints. A nil DB means stateless mode:
// body-based batches only, analytics become no-ops.
type Handler struct {
	DB      *sql.DB
	Weights scoring.Weights

	// Now supplies "today" for scoring; tests pin it.
	Now func() time.Time
}

func NewHandler(db *sql.DB, weights scoring.Weights) *Handler {
	return &Handler{DB: db, Weights: weights, Now: time.Now}
}

// Analyze handles POST /tasks/analyze: scores a request-body batch and
// returns it sorted by score descending, or 400 with the cycle list.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}
	h.respondAnalyzed(w, r, batch)
}

// Suggest handles POST /tasks/suggest: same pipeline, but returns the top 3
// tasks annotated with an explanation.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.decodeBatch(w, r)
	if !ok {
		return
	}
	h.respondSuggested(w, r, batch)
}

// AnalyzeStored handles GET /tasks/analyze: the stored tasks as one batch.
func (h *Handler) AnalyzeStored(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.loadStoredBatch(w, r)
	if !ok {
		return
	}
	h.respondAnalyzed(w, r, batch)
}

// SuggestStored handles GET /tasks/suggest.
func (h *Handler) SuggestStored(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.loadStoredBatch(w, r)
	if !ok {
		return
	}
	h.respondSuggested(w, r, batch)
}

// -------------------------------
// PIPELINE
// -------------------------------

func (h *Handler) decodeBatch(w http.ResponseWriter, r *http.Request) ([]scoring.Task, bool) {
	var inputs []TaskInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return nil, false
	}

	batch, err := ParseBatch(inputs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return batch, true
}

func (h *Handler) loadStoredBatch(w http.ResponseWriter, r *http.Request) ([]scoring.Task, bool) {
	store := &Store{DB: h.DB}
	batch, err := store.LoadBatch(r.Context())
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return batch, true
}

// rejectCycles writes the 400 cycle response if the batch has a dependency
// cycle. No partial scoring: one cycle rejects the whole batch.
func (h *Handler) rejectCycles(w http.ResponseWriter, r *http.Request, batch []scoring.Task) bool {
	cycles := scoring.DetectCycles(batch)
	if len(cycles) == 0 {
		return false
	}

	_ = analytics.Log(r.Context(), h.DB, analytics.FromRequest(r), "batch_rejected_cycles", map[string]any{
		"task_count":  len(batch),
		"cycle_count": len(cycles),
	}, analytics.SourceEventKeyFromRequest(r))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":  "Circular dependencies detected",
		"cycles": cycles,
	})
	return true
}

func (h *Handler) respondAnalyzed(w http.ResponseWriter, r *http.Request, batch []scoring.Task) {
	if h.rejectCycles(w, r, batch) {
		return
	}

	today := scoring.DateOnly(h.Now())
	scored := h.scoreBatch(batch, today)

	topScore := 0.0
	if len(scored) > 0 {
		topScore = scored[0].Score
	}
	_ = analytics.Log(r.Context(), h.DB, analytics.FromRequest(r), "batch_analyzed", map[string]any{
		"task_count": len(batch),
		"top_score":  topScore,
		"top_tier":   analytics.TierFromScore(topScore),
	}, analytics.SourceEventKeyFromRequest(r))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(scored); err != nil {
		log.Printf("[WARN] encode analyze response: %v", err)
	}
}

func (h *Handler) respondSuggested(w http.ResponseWriter, r *http.Request, batch []scoring.Task) {
	if h.rejectCycles(w, r, batch) {
		return
	}

	today := scoring.DateOnly(h.Now())
	scored := h.scoreBatch(batch, today)

	if len(scored) > 3 {
		scored = scored[:3]
	}
	top3 := make([]ScoredTask, len(scored))
	for i, st := range scored {
		st.Explanation = scoring.Explanation(batch[st.inputIndex], today)
		top3[i] = st.ScoredTask
	}

	_ = analytics.Log(r.Context(), h.DB, analytics.FromRequest(r), "suggestions_served", map[string]any{
		"task_count":      len(batch),
		"suggested_count": len(top3),
	}, analytics.SourceEventKeyFromRequest(r))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"top_3": top3}); err != nil {
		log.Printf("[WARN] encode suggest response: %v", err)
	}
}

type rankedTask struct {
	ScoredTask
	inputIndex int
}

// scoreBatch scores every task against today and returns them sorted by
// score descending, ties keeping input order.
func (h *Handler) scoreBatch(batch []scoring.Task, today time.Time) []rankedTask {
	scores := make([]float64, len(batch))
	for i, t := range batch {
		scores[i] = scoring.Priority(t, h.Weights, today)
	}

	out := make([]rankedTask, 0, len(batch))
	for _, idx := range scoring.RankDesc(scores) {
		out = append(out, rankedTask{
			ScoredTask: newScoredTask(batch[idx], scores[idx]),
			inputIndex: idx,
		})
	}
	return out
}
