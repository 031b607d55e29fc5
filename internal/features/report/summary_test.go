package report

import "testing"

func TestSummarize(t *testing.T) {
	rows := []Checkin{
		{Status: "Current"},
		{Status: "Invalid"},
		{Status: "Current"},
		{Status: "Unknown"},
	}

	got := Summarize(rows)
	want := Summary{NumCurrent: 2, NumInvalid: 1, NumInsufficient: 0, NumTotal: 3}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero counts", got)
	}
}

func TestSummarizeInsufficient(t *testing.T) {
	rows := []Checkin{
		{Status: "insufficient"},
		{Status: "insufficient"},
		{Status: "deleted"},
	}

	got := Summarize(rows)
	want := Summary{NumInsufficient: 2, NumTotal: 2}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}
