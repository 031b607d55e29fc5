package report

import (
	"time"

	"splice-reports/internal/features/filter"
)

// Window is the half-open interval [Start, End) a filter selects check-ins
// from.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow turns a filter's criteria into a concrete window. Trailing
// hours count back from now; an explicit date range is used verbatim. A
// filter satisfying neither mode failed validation and should not reach this
// point; the check is kept anyway.
func ResolveWindow(f *filter.Filter, now time.Time) (Window, error) {
	if f.Hours != nil {
		return Window{
			Start: now.Add(-time.Duration(*f.Hours) * time.Hour),
			End:   now,
		}, nil
	}

	if f.StartDate != nil && f.EndDate != nil {
		return Window{Start: *f.StartDate, End: *f.EndDate}, nil
	}

	return Window{}, &filter.InvalidCriteriaError{
		Violations: []filter.Violation{{
			Kind:    filter.ViolationMissingWindow,
			Message: "Please choose either a date range or number of hours",
		}},
	}
}
