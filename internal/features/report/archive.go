package report

import (
	"archive/zip"
	"bytes"
	"strings"
)

// BuildArchive packages the bundle entries under a single top-level
// directory named report_<timestamp>, colons replaced by dashes. The whole
// operation is buffer to buffer; nothing touches the filesystem.
func BuildArchive(timestamp string, entries []Entry) ([]byte, error) {
	dir := "report_" + strings.ReplaceAll(timestamp, ":", "-")

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, entry := range entries {
		f, err := w.Create(dir + "/" + entry.Name)
		if err != nil {
			return nil, &ArchiveError{Entry: entry.Name, Err: err}
		}
		if _, err := f.Write(entry.Data); err != nil {
			return nil, &ArchiveError{Entry: entry.Name, Err: err}
		}
	}

	if err := w.Close(); err != nil {
		return nil, &ArchiveError{Entry: dir, Err: err}
	}

	return buf.Bytes(), nil
}
