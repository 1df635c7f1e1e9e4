package xlsx

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/costops/fleetbook/pkg/errors"
)

const defaultSheet = "Sheet1"

// WriteFile writes a header row plus data rows to a fresh workbook,
// creating parent directories as needed. The header row is bold and
// frozen, and columns are sized to their longest value so the file is
// readable without manual fiddling.
func WriteFile(path string, header []string, rows [][]any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeRow(f, 1, toAny(header)); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for i, row := range rows {
		if err := writeRow(f, i+2, row); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}

	if err := styleHeader(f, len(header)); err != nil {
		return errors.WrapIO("write", path, err)
	}
	sizeColumns(f, header, rows)

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(defaultSheet, cell, &values)
}

func styleHeader(f *excelize.File, cols int) error {
	if cols == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(defaultSheet, "A1", last, style); err != nil {
		return err
	}

	// Keep the header visible while scrolling.
	return f.SetPanes(defaultSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func sizeColumns(f *excelize.File, header []string, rows [][]any) {
	for i := range header {
		width := len(header[i])
		for _, row := range rows {
			if i < len(row) {
				if s, ok := row[i].(string); ok && len(s) > width {
					width = len(s)
				}
			}
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		// Padding of 2 chars; cap so one long cell cannot blow up the layout.
		w := float64(width + 2)
		if w > 60 {
			w = 60
		}
		_ = f.SetColWidth(defaultSheet, col, col, w)
	}
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
