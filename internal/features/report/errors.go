package report

import "fmt"

// ConfigError means the export cannot run because the recipient public key
// is missing or unreadable. Nothing is retried and no process is spawned.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("report: public key %q unusable: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// EncryptionError means key import, recipient discovery or the encryption
// itself failed. The unencrypted bytes are never returned in its place.
type EncryptionError struct {
	Stage  string
	Stderr string
	Err    error
}

func (e *EncryptionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("report: encryption failed during %s: %v: %s", e.Stage, e.Err, e.Stderr)
	}
	return fmt.Sprintf("report: encryption failed during %s: %v", e.Stage, e.Err)
}

func (e *EncryptionError) Unwrap() error { return e.Err }

// ArchiveError wraps a failure while writing the in-memory zip bundle.
type ArchiveError struct {
	Entry string
	Err   error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("report: building archive entry %q: %v", e.Entry, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }
