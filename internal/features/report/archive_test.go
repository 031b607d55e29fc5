package report

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestBuildArchiveRoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "export.csv", Data: []byte("Status, \n\"current\", \n")},
		{Name: "metadata", Data: []byte("Generated: 2026-08-28T12:00:00Z\n")},
		{Name: "expanded_export.json", Data: []byte("{}")},
	}

	data, err := BuildArchive("2026-08-28T12:00:00Z", entries)
	if err != nil {
		t.Fatalf("BuildArchive() error = %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}

	if len(r.File) != len(entries) {
		t.Fatalf("archive holds %d files, want %d", len(r.File), len(entries))
	}

	// Colons in the timestamp become dashes in the directory name.
	const dir = "report_2026-08-28T12-00-00Z/"
	for i, f := range r.File {
		if f.Name != dir+entries[i].Name {
			t.Errorf("file %d name = %q, want %q", i, f.Name, dir+entries[i].Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", f.Name, err)
		}
		if !bytes.Equal(content, entries[i].Data) {
			t.Errorf("%s content = %q, want %q", f.Name, content, entries[i].Data)
		}
	}
}

func TestBuildArchiveEmpty(t *testing.T) {
	data, err := BuildArchive("2026-08-28T12:00:00Z", nil)
	if err != nil {
		t.Fatalf("BuildArchive() error = %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	if len(r.File) != 0 {
		t.Errorf("archive holds %d files, want 0", len(r.File))
	}
}
