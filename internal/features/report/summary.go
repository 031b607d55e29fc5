package report

import "strings"

// Summarize reduces a row set to its status counts. Rows carrying any other
// display status are excluded from all four counts.
func Summarize(rows []Checkin) Summary {
	var s Summary
	for _, row := range rows {
		switch strings.ToLower(row.Status) {
		case "current":
			s.NumCurrent++
		case "invalid":
			s.NumInvalid++
		case "insufficient":
			s.NumInsufficient++
		default:
			continue
		}
		s.NumTotal++
	}
	return s
}
