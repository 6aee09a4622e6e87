package worktime

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.Local)
}

func ptr(t time.Time) *time.Time { return &t }

func TestMinutes(t *testing.T) {
	cases := []struct {
		name    string
		start   time.Time
		end     time.Time
		want    int
		wantErr bool
	}{
		{"full day", at(9, 0), at(18, 0), 540, false},
		{"same instant", at(9, 0), at(9, 0), 0, false},
		{"one minute", at(9, 0), at(9, 1), 1, false},
		{"reversed", at(18, 0), at(9, 0), 0, true},
	}
	for _, c := range cases {
		got, err := Minutes(c.start, c.end)
		if c.wantErr {
			if err == nil {
				t.Errorf("%s: Minutes() error = nil, want ErrInvalidInterval", c.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: Minutes() error = %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: Minutes() = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestSumClosed(t *testing.T) {
	intervals := []Interval{
		{Start: at(12, 0), End: ptr(at(13, 0))},
		{Start: at(15, 0), End: ptr(at(15, 15))},
		{Start: at(17, 0), End: nil}, // open break contributes 0
	}
	if got := SumClosed(intervals); got != 75 {
		t.Errorf("SumClosed() = %d, want 75", got)
	}
	if got := SumClosed(nil); got != 0 {
		t.Errorf("SumClosed(nil) = %d, want 0", got)
	}
}

func TestFormatHM(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0:00"},
		{1, "0:01"},
		{60, "1:00"},
		{75, "1:15"},
		{480, "8:00"},
		{1505, "25:05"}, // hours unbounded
		{-30, "0:00"},
	}
	for _, c := range cases {
		if got := FormatHM(c.minutes); got != c.want {
			t.Errorf("FormatHM(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestFormatHMRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 59, 60, 61, 479, 480, 1440} {
		s := FormatHM(minutes)
		parts := strings.SplitN(s, ":", 2)
		h, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		if h*60+m != minutes {
			t.Errorf("FormatHM(%d) = %q does not parse back", minutes, s)
		}
	}
}

func TestNetWorked(t *testing.T) {
	if got := NetWorked(at(9, 0), nil, 60); got != nil {
		t.Errorf("NetWorked with open end = %v, want nil", *got)
	}

	got := NetWorked(at(9, 0), ptr(at(18, 0)), 60)
	if got == nil || *got != 480 {
		t.Errorf("NetWorked(9:00-18:00, 60) = %v, want 480", got)
	}

	// break total exceeding the worked span means corrupt data, not a
	// negative duration
	if got := NetWorked(at(9, 0), ptr(at(10, 0)), 120); got != nil {
		t.Errorf("NetWorked with oversized break = %v, want nil", *got)
	}

	if got := NetWorked(at(18, 0), ptr(at(9, 0)), 0); got != nil {
		t.Errorf("NetWorked with reversed interval = %v, want nil", *got)
	}
}

func TestBreakPlusNetEqualsGross(t *testing.T) {
	start, end := at(9, 0), at(18, 30)
	breaks := []Interval{
		{Start: at(12, 0), End: ptr(at(13, 0))},
		{Start: at(16, 0), End: ptr(at(16, 10))},
	}
	breakTotal := SumClosed(breaks)
	net := NetWorked(start, &end, breakTotal)
	gross, _ := Minutes(start, end)
	if net == nil || breakTotal+*net != gross {
		t.Errorf("breakTotal(%d) + net(%v) != gross(%d)", breakTotal, net, gross)
	}
}
