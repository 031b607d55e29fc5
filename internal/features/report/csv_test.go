package report

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestExportCSVZeroRows(t *testing.T) {
	if got := ExportCSV(nil); got != "" {
		t.Errorf("ExportCSV(nil) = %q, want empty string", got)
	}
	if got := ExportCSV([]Row{}); got != "" {
		t.Errorf("ExportCSV([]) = %q, want empty string", got)
	}
}

func TestExportCSVLayout(t *testing.T) {
	rows := []Row{
		{
			{Key: "checkin_date", Value: "2026-08-28T11:30:00Z"},
			{Key: "status", Value: "current"},
			{Key: "record", Value: bson.M{"$oid": "65f1c0ffee0000000000a001"}},
		},
	}

	got := ExportCSV(rows)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 || lines[2] != "" {
		t.Fatalf("ExportCSV() = %q, want header + one row + trailing newline", got)
	}

	// Header and body both keep the trailing ", " before the newline.
	if lines[0] != "Checkin Date, Status, record, " {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `2026-08-28T11:30:00Z, "current", 65f1c0ffee0000000000a001, ` {
		t.Errorf("row = %q", lines[1])
	}
}

func TestExportCSVQuotesTextFields(t *testing.T) {
	rows := []Row{
		{
			{Key: "status", Value: "current"},
			{Key: "hostname", Value: "web01.example.com"},
			{Key: "identifier", Value: "a"},
			{Key: "checkin_date", Value: "2026-08-28T11:30:00Z"},
		},
	}

	got := ExportCSV(rows)
	body := strings.Split(got, "\n")[1]

	for _, quoted := range []string{`"current"`, `"web01.example.com"`, `"a"`} {
		if !strings.Contains(body, quoted) {
			t.Errorf("body %q missing quoted cell %s", body, quoted)
		}
	}
	if strings.Contains(body, `"2026-08-28T11:30:00Z"`) {
		t.Errorf("body %q quotes checkin_date, which is not a text field", body)
	}
}
