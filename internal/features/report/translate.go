package report

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Raw entitlement statuses as reported by the checkin tool, and the display
// vocabulary they map to. Anything else passes through unchanged.
var statusDisplay = map[string]string{
	"valid":   "current",
	"partial": "insufficient",
	"invalid": "invalid",
}

// headerLabels maps internal field names to the labels used in exports.
// Unmapped fields pass through unchanged.
var headerLabels = map[string]string{
	"checkin_date":      "Checkin Date",
	"status":            "Status",
	"identifier":        "Identifier",
	"splice_server":     "Splice Server",
	"systemid":          "System ID",
	"hostname":          "Hostname",
	"organization_name": "Organization",
	"state":             "Lifecycle State",
}

// TranslateStatus maps a raw entitlement status to its display form.
func TranslateStatus(raw string) string {
	if display, ok := statusDisplay[raw]; ok {
		return display
	}
	return raw
}

// TranslateFactKey normalizes a fact key for display. Fact keys use the
// token "_dot_" as a placeholder for literal dots; the key "systemid" is
// special-cased (it carries no dot token) and becomes "system.id".
func TranslateFactKey(key string) string {
	if key == "systemid" {
		return "system.id"
	}
	return strings.ReplaceAll(key, "_dot_", ".")
}

// TranslateFacts normalizes every key of an ordered facts document,
// preserving order.
func TranslateFacts(facts bson.D) []FactPair {
	pairs := make([]FactPair, 0, len(facts))
	for _, f := range facts {
		pairs = append(pairs, FactPair{Key: TranslateFactKey(f.Key), Value: f.Value})
	}
	return pairs
}

// HeaderLabel maps an internal field name to its human-facing label.
func HeaderLabel(field string) string {
	if label, ok := headerLabels[field]; ok {
		return label
	}
	return field
}
