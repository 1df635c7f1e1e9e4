// Package xlsx wraps excelize with the small amount of spreadsheet
// handling fleetbook needs: reading the first sheet of an export into a
// header + rows table, binding named columns with load-time validation,
// and writing result tables with a styled header row.
package xlsx

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/costops/fleetbook/pkg/errors"
)

// Table is the raw contents of one worksheet. The first row of the
// sheet is the header; Rows holds everything after it. Row slices may
// be shorter than the header when trailing cells are empty.
type Table struct {
	File   string
	Sheet  string
	Header []string
	Rows   [][]string
}

// ReadFile loads the first worksheet of an .xlsx file.
func ReadFile(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError("xlsx", path, "workbook has no sheets", nil)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapParse("xlsx", path, err)
	}
	if len(rows) == 0 {
		return nil, errors.NewParseError("xlsx", path, "sheet "+sheet+" is empty", nil)
	}

	return &Table{
		File:   path,
		Sheet:  sheet,
		Header: rows[0],
		Rows:   rows[1:],
	}, nil
}

// Binding maps logical column names to indexes in a Table's rows.
type Binding struct {
	table *Table
	idx   map[string]int
}

// Bind resolves the given column names against the table header and
// fails with a single ColumnError listing every missing required
// column. Header matching ignores case and surrounding/duplicate
// whitespace since exports are hand-maintained.
func (t *Table) Bind(label string, required, optional []string) (*Binding, error) {
	byKey := make(map[string]int, len(t.Header))
	for i, col := range t.Header {
		key := headerKey(col)
		if key == "" {
			continue
		}
		if _, exists := byKey[key]; !exists {
			byKey[key] = i
		}
	}

	b := &Binding{table: t, idx: make(map[string]int)}
	var missing []string
	for _, col := range required {
		i, ok := byKey[headerKey(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		b.idx[col] = i
	}
	for _, col := range optional {
		if i, ok := byKey[headerKey(col)]; ok {
			b.idx[col] = i
		}
	}

	if len(missing) > 0 {
		return nil, errors.NewColumnError(t.File, label, missing, t.Header)
	}
	return b, nil
}

// Has reports whether the (optional) column was present.
func (b *Binding) Has(col string) bool {
	_, ok := b.idx[col]
	return ok
}

// Value returns the trimmed cell value for a bound column, or "" when
// the column is absent or the row is too short.
func (b *Binding) Value(row []string, col string) string {
	i, ok := b.idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// headerKey normalizes a header cell for matching.
func headerKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
