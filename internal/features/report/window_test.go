package report

import (
	"errors"
	"testing"
	"time"

	"splice-reports/internal/features/filter"
)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func TestResolveWindowHours(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	f := &filter.Filter{Hours: intPtr(24)}

	win, err := ResolveWindow(f, now)
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if !win.End.Equal(now) {
		t.Errorf("End = %v, want %v", win.End, now)
	}
	if want := now.Add(-24 * time.Hour); !win.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", win.Start, want)
	}
}

func TestResolveWindowDateRange(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)
	f := &filter.Filter{StartDate: timePtr(start), EndDate: timePtr(end)}

	win, err := ResolveWindow(f, time.Now())
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if !win.Start.Equal(start) || !win.End.Equal(end) {
		t.Errorf("window = [%v, %v), want [%v, %v)", win.Start, win.End, start, end)
	}
}

func TestResolveWindowUnsatisfiable(t *testing.T) {
	_, err := ResolveWindow(&filter.Filter{}, time.Now())

	var invalid *filter.InvalidCriteriaError
	if !errors.As(err, &invalid) {
		t.Fatalf("ResolveWindow() error = %v, want InvalidCriteriaError", err)
	}
}
