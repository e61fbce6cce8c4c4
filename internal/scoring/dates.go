package scoring

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate matches any date normalization failure via errors.Is.
var ErrInvalidDate = errors.New("invalid due date")

// InvalidDateError carries the original value that failed to normalize.
type InvalidDateError struct {
	Value any
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid due date: %v", e.Value)
}

func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// dateLayouts are tried in order for string input. Offsets are accepted on
// the date-time forms; the date itself is what we keep.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// NormalizeDate converts a heterogeneous due-date value into a calendar date
// (midnight UTC). A time.Time passes through date-truncated. A string gets a
// full ISO-8601 parse; if that fails, the part before a literal 'T' is retried
// as a plain date. Anything else fails with *InvalidDateError.
func NormalizeDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return DateOnly(d), nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return DateOnly(t), nil
			}
		}
		if head, _, found := strings.Cut(d, "T"); found {
			if t, err := time.Parse("2006-01-02", head); err == nil {
				return DateOnly(t), nil
			}
		}
		return time.Time{}, &InvalidDateError{Value: d}
	default:
		return time.Time{}, &InvalidDateError{Value: v}
	}
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole calendar days from today until due.
// Negative means overdue. Time-of-day on either side is ignored.
func DaysUntil(due, today time.Time) int {
	return int(DateOnly(due).Sub(DateOnly(today)).Hours() / 24)
}
