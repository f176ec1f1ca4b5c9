// Package fs provides file-based export of crawl results.
package fs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/pagesift/pagesift"
)

// Ensure the writers implement pagesift.RecordWriter at compile time.
var (
	_ pagesift.RecordWriter = (*JSONWriter)(nil)
	_ pagesift.RecordWriter = (*CSVWriter)(nil)
)

// FieldNames returns the union of field keys across all records.
// "title" sorts first when present; the remaining keys are sorted
// alphabetically so column order is stable across runs.
func FieldNames(records []pagesift.Record) []string {
	seen := make(map[string]bool)
	hasTitle := false
	var names []string
	for _, rec := range records {
		for key := range rec {
			if seen[key] {
				continue
			}
			seen[key] = true
			if key == "title" {
				hasTitle = true
				continue
			}
			names = append(names, key)
		}
	}
	slices.Sort(names)
	if hasTitle {
		names = append([]string{"title"}, names...)
	}
	return names
}

// JSONWriter exports a crawl result as a single JSON file.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a JSONWriter that writes to the given path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// WriteResult writes the full crawl result as indented JSON.
func (w *JSONWriter) WriteResult(ctx context.Context, result *pagesift.CrawlResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(w.path, data, 0644)
}

// CSVWriter exports a crawl result's records as a CSV file.
// The header row is the union of field names across all records;
// records missing a field get an empty cell.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter that writes to the given path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// WriteResult writes the records as CSV rows under a field-name header.
func (w *CSVWriter) WriteResult(ctx context.Context, result *pagesift.CrawlResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	f, err := os.Create(w.path)
	if err != nil {
		return err
	}
	defer f.Close()

	names := FieldNames(result.Records)

	cw := csv.NewWriter(f)
	if err := cw.Write(names); err != nil {
		return err
	}

	row := make([]string, len(names))
	for _, rec := range result.Records {
		for i, name := range names {
			row[i] = rec[name]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	return f.Close()
}
