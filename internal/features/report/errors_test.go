package report

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessagesAndUnwrap(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "config",
			err:  &ConfigError{Path: "/etc/splice-reports/report-key.pub", Err: cause},
			want: []string{"/etc/splice-reports/report-key.pub", "boom"},
		},
		{
			name: "encryption with stderr",
			err:  &EncryptionError{Stage: "import", Stderr: "invalid packet", Err: cause},
			want: []string{"import", "invalid packet", "boom"},
		},
		{
			name: "encryption without stderr",
			err:  &EncryptionError{Stage: "list-keys", Err: cause},
			want: []string{"list-keys", "boom"},
		},
		{
			name: "archive",
			err:  &ArchiveError{Entry: "export.csv", Err: cause},
			want: []string{"export.csv", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, missing %q", msg, want)
				}
			}
			if !errors.Is(tt.err, cause) {
				t.Errorf("errors.Is(%T, cause) = false, want true", tt.err)
			}
		})
	}
}
