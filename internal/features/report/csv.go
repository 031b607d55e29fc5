package report

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Fields rendered quoted in CSV output. Everything else uses its default
// string form.
var csvTextFields = map[string]bool{
	"status":            true,
	"identifier":        true,
	"splice_server":     true,
	"hostname":          true,
	"organization_name": true,
	"state":             true,
}

// ExportCSV serializes rows to the legacy CSV layout consumed by downstream
// tooling: fields joined by ", " with the trailing separator retained before
// each newline, header labels taken from the first row's keys. Do not switch
// this to encoding/csv; consumers depend on the exact byte layout. Zero rows
// yield an empty string, not a header-only document.
func ExportCSV(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder

	for _, cell := range rows[0] {
		b.WriteString(HeaderLabel(cell.Key))
		b.WriteString(", ")
	}
	b.WriteString("\n")

	for _, row := range rows {
		for _, cell := range row {
			b.WriteString(renderCell(cell))
			b.WriteString(", ")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderCell renders one field: a "record" sub-document renders as its $oid
// string, text fields are quoted, everything else uses fmt's default form.
func renderCell(cell Cell) string {
	if cell.Key == "record" {
		if id, ok := recordOID(cell.Value); ok {
			return id
		}
	}
	if csvTextFields[cell.Key] {
		return fmt.Sprintf("\"%v\"", cell.Value)
	}
	return fmt.Sprintf("%v", cell.Value)
}

func recordOID(value any) (string, bool) {
	switch v := value.(type) {
	case bson.M:
		if id, ok := v["$oid"]; ok {
			return fmt.Sprintf("%v", id), true
		}
	case bson.D:
		for _, e := range v {
			if e.Key == "$oid" {
				return fmt.Sprintf("%v", e.Value), true
			}
		}
	}
	return "", false
}
