// Package csvout is the output consumer: one delimited file per category,
// named after the category, header row matching the fixed column order.
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/domain/bif"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal"
	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/internal/errors"
)

// Writer persists finalized output tables under a single directory.
type Writer struct {
	dir string
	log *internal.Logger
}

// NewWriter creates a writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}
	return &Writer{dir: dir, log: internal.DefaultLogger}, nil
}

// WriteTable writes one category's table as <category>.csv and returns the
// path written. An empty table still produces a file with the header row.
func (w *Writer) WriteTable(table bif.OutputTable) (string, error) {
	path := filepath.Join(w.dir, FileName(table.Category))
	file, err := os.Create(path)
	if err != nil {
		return "", errors.OutputFailed(fmt.Sprintf("failed to create %s: %v", path, err))
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(table.Columns); err != nil {
		return "", errors.Wrapf(err, "failed to write header for %s", table.Category)
	}
	for _, rec := range table.Records {
		if err := cw.Write(table.Cells(rec)); err != nil {
			return "", errors.Wrapf(err, "failed to write record for %s", table.Category)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", errors.OutputFailed(fmt.Sprintf("failed to flush %s: %v", path, err))
	}

	w.log.Info("Data processing complete. Saved as %s", FileName(table.Category))
	return path, nil
}

// FileName sanitizes a category name into a safe file name. Path
// separators and control characters become underscores.
func FileName(category string) string {
	var b strings.Builder
	for _, r := range category {
		switch {
		case r == '/' || r == '\\' || r == os.PathSeparator:
			b.WriteRune('_')
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" {
		name = "_"
	}
	return name + ".csv"
}
