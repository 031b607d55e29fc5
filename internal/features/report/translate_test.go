package report

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestTranslateStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"valid", "current"},
		{"partial", "insufficient"},
		{"invalid", "invalid"},
		{"unknown", "unknown"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TranslateStatus(tt.raw); got != tt.want {
			t.Errorf("TranslateStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTranslateFactKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"foo_dot_bar_dot_baz", "foo.bar.baz"},
		{"systemid", "system.id"},
		{"memory_dot_memtotal", "memory.memtotal"},
		{"hostname", "hostname"},
	}

	for _, tt := range tests {
		if got := TranslateFactKey(tt.key); got != tt.want {
			t.Errorf("TranslateFactKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestTranslateFactsPreservesOrder(t *testing.T) {
	facts := bson.D{
		{Key: "net_dot_interface_dot_eth0", Value: "10.0.0.1"},
		{Key: "systemid", Value: "1000012345"},
		{Key: "cpu_dot_count", Value: 4},
	}

	pairs := TranslateFacts(facts)
	wantKeys := []string{"net.interface.eth0", "system.id", "cpu.count"}
	if len(pairs) != len(wantKeys) {
		t.Fatalf("TranslateFacts() returned %d pairs, want %d", len(pairs), len(wantKeys))
	}
	for i, want := range wantKeys {
		if pairs[i].Key != want {
			t.Errorf("pair %d key = %q, want %q", i, pairs[i].Key, want)
		}
	}
}

func TestHeaderLabel(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"checkin_date", "Checkin Date"},
		{"status", "Status"},
		{"systemid", "System ID"},
		{"organization_name", "Organization"},
		{"state", "Lifecycle State"},
		{"not_a_field", "not_a_field"},
	}

	for _, tt := range tests {
		if got := HeaderLabel(tt.field); got != tt.want {
			t.Errorf("HeaderLabel(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}
