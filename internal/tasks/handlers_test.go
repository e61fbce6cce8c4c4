package tasks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskrank-backend/internal/scoring"
)

// stateless handler with a pinned clock (today = 2026-03-10)
func testHandler() *Handler {
	h := NewHandler(nil, scoring.DefaultWeights())
	h.Now = func() time.Time {
		return time.Date(2026, time.March, 10, 15, 4, 5, 0, time.UTC)
	}
	return h
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const analyzeBatch = `[
	{"title": "Overdue report", "due_date": "2026-03-08", "estimated_hours": 3, "importance": 5},
	{"title": "Next week prep", "due_date": "2026-03-15", "estimated_hours": 3, "importance": 5},
	{"title": "Ship hotfix", "due_date": "2026-03-10", "estimated_hours": 0, "importance": 10, "dependencies": [2]}
]`

func TestAnalyzeSortsByScoreDescending(t *testing.T) {
	h := testHandler()
	rec := postJSON(t, h.Analyze, "/tasks/analyze", analyzeBatch)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeJSON[[]ScoredTask](t, rec)
	require.Len(t, got, 3)

	// hand-computed with default weights
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, 9.15, got[0].Score)
	assert.Equal(t, 1, got[1].ID)
	assert.Equal(t, 6.375, got[1].Score)
	assert.Equal(t, 2, got[2].ID)
	assert.Equal(t, 4.375, got[2].Score)

	// ids were assigned 1-based in input order
	assert.Equal(t, "Ship hotfix", got[0].Title)
	assert.Equal(t, "2026-03-10", got[0].DueDate)
}

func TestAnalyzeIdempotent(t *testing.T) {
	h := testHandler()
	first := postJSON(t, h.Analyze, "/tasks/analyze", analyzeBatch)
	second := postJSON(t, h.Analyze, "/tasks/analyze", analyzeBatch)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	h := testHandler()
	rec := postJSON(t, h.Analyze, "/tasks/analyze", `[]`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestAnalyzeRejectsCycles(t *testing.T) {
	h := testHandler()
	body := `[
		{"id": 1, "title": "A", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 5, "dependencies": [2]},
		{"id": 2, "title": "B", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 5, "dependencies": [1]}
	]`
	rec := postJSON(t, h.Analyze, "/tasks/analyze", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	got := decodeJSON[struct {
		Error  string  `json:"error"`
		Cycles [][]int `json:"cycles"`
	}](t, rec)
	assert.Equal(t, "Circular dependencies detected", got.Error)
	assert.Equal(t, [][]int{{1, 2, 1}}, got.Cycles)
}

func TestAnalyzeRejectsSelfDependency(t *testing.T) {
	h := testHandler()
	body := `[{"id": 1, "title": "A", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 5, "dependencies": [1]}]`
	rec := postJSON(t, h.Analyze, "/tasks/analyze", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	got := decodeJSON[struct {
		Cycles [][]int `json:"cycles"`
	}](t, rec)
	assert.Equal(t, [][]int{{1}}, got.Cycles)
}

func TestAnalyzeInvalidJSON(t *testing.T) {
	h := testHandler()
	rec := postJSON(t, h.Analyze, "/tasks/analyze", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeValidationFailures(t *testing.T) {
	h := testHandler()
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			"missing title",
			`[{"due_date": "2026-03-12", "estimated_hours": 1, "importance": 5}]`,
			"task 1: title is required",
		},
		{
			"negative hours",
			`[{"title": "A", "due_date": "2026-03-12", "estimated_hours": -1, "importance": 5}]`,
			"task 1: estimated_hours must be >= 0",
		},
		{
			"importance out of range",
			`[{"title": "A", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 11}]`,
			"task 1: importance must be at most 10",
		},
		{
			"bad due date",
			`[{"title": "A", "due_date": "soonish", "estimated_hours": 1, "importance": 5}]`,
			"task 1: invalid due date: soonish",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := postJSON(t, h.Analyze, "/tasks/analyze", c.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, c.want, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestSuggestReturnsTop3WithExplanations(t *testing.T) {
	h := testHandler()
	body := `[
		{"title": "Filler one", "due_date": "2026-04-20", "estimated_hours": 6, "importance": 3},
		{"title": "Ship hotfix", "due_date": "2026-03-10", "estimated_hours": 0.5, "importance": 10, "dependencies": [1]},
		{"title": "Filler two", "due_date": "2026-04-21", "estimated_hours": 6, "importance": 3},
		{"title": "Overdue report", "due_date": "2026-03-01", "estimated_hours": 3, "importance": 8}
	]`
	rec := postJSON(t, h.Suggest, "/tasks/suggest", body)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeJSON[struct {
		Top3 []ScoredTask `json:"top_3"`
	}](t, rec)
	require.Len(t, got.Top3, 3)

	assert.Equal(t, "Ship hotfix", got.Top3[0].Title)
	assert.Equal(t,
		"Due today · High importance · Quick win (low effort) · Blocks 1 task(s)",
		got.Top3[0].Explanation)

	assert.Equal(t, "Overdue report", got.Top3[1].Title)
	assert.Equal(t, "Overdue · High importance", got.Top3[1].Explanation)

	// the two fillers tie; the earlier one wins the last slot
	assert.Equal(t, "Filler one", got.Top3[2].Title)
	assert.Equal(t, "Balanced factors", got.Top3[2].Explanation)
}

func TestSuggestFewerThanThree(t *testing.T) {
	h := testHandler()
	body := `[{"title": "Only one", "due_date": "2026-04-20", "estimated_hours": 6, "importance": 3}]`
	rec := postJSON(t, h.Suggest, "/tasks/suggest", body)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeJSON[struct {
		Top3 []ScoredTask `json:"top_3"`
	}](t, rec)
	require.Len(t, got.Top3, 1)
	assert.Equal(t, "Balanced factors", got.Top3[0].Explanation)
}

func TestSuggestRejectsCycles(t *testing.T) {
	h := testHandler()
	body := `[
		{"id": 3, "title": "C", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 5, "dependencies": [7]},
		{"id": 7, "title": "G", "due_date": "2026-03-12", "estimated_hours": 1, "importance": 5, "dependencies": [3]}
	]`
	rec := postJSON(t, h.Suggest, "/tasks/suggest", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	got := decodeJSON[struct {
		Cycles [][]int `json:"cycles"`
	}](t, rec)
	assert.Equal(t, [][]int{{3, 7, 3}}, got.Cycles)
}
