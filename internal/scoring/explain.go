package scoring

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const explanationSeparator = " · "

// Explanation builds the human-readable reason string for a suggested task.
// Signals are evaluated independently and joined in a fixed order; a task
// with none of them reads "Balanced factors". Missing hours suppress the
// quick-win phrase even though they score as zero effort.
func Explanation(t Task, today time.Time) string {
	var parts []string

	if !t.Due.IsZero() {
		daysLeft := DaysUntil(t.Due, today)
		switch {
		case daysLeft < 0:
			parts = append(parts, "Overdue")
		case daysLeft == 0:
			parts = append(parts, "Due today")
		case daysLeft <= 3:
			parts = append(parts, fmt.Sprintf("Due in %d day(s)", daysLeft))
		}
	}

	if t.Importance != nil && *t.Importance >= 8 {
		parts = append(parts, "High importance")
	}

	est := 999.0
	if t.EstimatedHours != nil {
		est = *t.EstimatedHours
	}
	if est <= 2 {
		parts = append(parts, "Quick win (low effort)")
	}

	if n := len(t.Dependencies); n > 0 {
		parts = append(parts, fmt.Sprintf("Blocks %d task(s)", n))
	}

	if len(parts) == 0 {
		return "Balanced factors"
	}
	return strings.Join(parts, explanationSeparator)
}

// RankDesc returns the indices of scores ordered descending. The sort is
// stable, so ties keep their input order.
func RankDesc(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	return idx
}
