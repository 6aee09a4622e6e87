package worktime

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when an interval's end precedes its start.
var ErrInvalidInterval = errors.New("interval end precedes start")

// Interval is a span of time whose end may still be open.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// Minutes returns the whole minutes elapsed between start and end.
func Minutes(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrInvalidInterval
	}
	return int(end.Sub(start).Minutes()), nil
}

// SumClosed sums the minutes of all closed intervals. Open intervals
// (nil end) contribute nothing: an in-progress break never counts
// toward the totals shown to the user.
func SumClosed(intervals []Interval) int {
	total := 0
	for _, iv := range intervals {
		if iv.End == nil {
			continue
		}
		mins, err := Minutes(iv.Start, *iv.End)
		if err != nil {
			continue
		}
		total += mins
	}
	return total
}

// FormatHM renders a minute count as "H:MM". Hours are unbounded,
// minutes are zero padded. Zero renders as "0:00".
func FormatHM(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// NetWorked returns (end - start) minus breakMinutes, or nil when the
// day is still open or the subtraction would go negative. Corrupt data
// yields "unavailable" rather than a negative duration.
func NetWorked(start time.Time, end *time.Time, breakMinutes int) *int {
	if end == nil {
		return nil
	}
	gross, err := Minutes(start, *end)
	if err != nil {
		return nil
	}
	net := gross - breakMinutes
	if net < 0 {
		return nil
	}
	return &net
}
