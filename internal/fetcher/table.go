package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Table is a header row plus data rows read from a tabular file.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	colIdx map[string]int
}

// NewTable builds a Table, trimming header names. Duplicate header names
// resolve to their first occurrence.
func NewTable(name string, header []string, rows [][]string) *Table {
	t := &Table{Name: name, Header: make([]string, len(header)), Rows: rows, colIdx: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		t.Header[i] = h
		if _, dup := t.colIdx[h]; !dup {
			t.colIdx[h] = i
		}
	}
	return t
}

// Has reports whether the table has the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.colIdx[col]
	return ok
}

// Missing returns the columns from cols that the table lacks, in order.
func (t *Table) Missing(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Get returns the trimmed cell for col in row, or "" when either is absent.
func (t *Table) Get(row []string, col string) string {
	idx, ok := t.colIdx[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Record maps every header to its cell in row.
func (t *Table) Record(row []string) map[string]string {
	rec := make(map[string]string, len(t.Header))
	for _, h := range t.Header {
		rec[h] = t.Get(row, h)
	}
	return rec
}

// ReadTable loads a CSV, TSV, or XLSX file. The first row is the header and
// fully blank rows are dropped.
func ReadTable(ctx context.Context, path string) (*Table, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = ReadXLSX(path, XLSXOptions{})
	case ".tsv":
		rows, err = readDelimited(ctx, path, '\t')
	default:
		rows, err = readDelimited(ctx, path, ',')
	}
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: read table %s", path)
	}

	if len(rows) == 0 {
		return nil, eris.Errorf("fetcher: table %s has no header row", path)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		if !blankRow(r) {
			data = append(data, r)
		}
	}

	return NewTable(filepath.Base(path), rows[0], data), nil
}

func readDelimited(ctx context.Context, path string, delim rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "csv: open file")
	}
	defer f.Close() //nolint:errcheck

	rowCh, errCh := StreamCSV(ctx, f, CSVOptions{Delimiter: delim, LazyQuotes: true})
	var rows [][]string
	for row := range rowCh {
		rows = append(rows, row)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	return rows, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
