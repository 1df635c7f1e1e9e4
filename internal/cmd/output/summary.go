package output

import (
	"os"

	"github.com/costops/fleetbook/internal/cmd/globals"
)

// ReconcileSummary is the run summary printed after a reconciliation.
type ReconcileSummary struct {
	FleetRows    int    `json:"fleet_rows"`
	RosterRows   int    `json:"roster_rows"`
	Matched      int    `json:"matched"`
	MissingInHR  int    `json:"missing_in_hr"`
	Mismatches   int    `json:"costcenter_mismatches"`
	MappingRows  int    `json:"mapping_rows"`
	MissingFile  string `json:"missing_file"`
	MismatchFile string `json:"mismatch_file"`
	MappingFile  string `json:"mapping_file"`
}

// ExportSummary is the run summary printed after an invoice export.
type ExportSummary struct {
	InvoiceLines  int     `json:"invoice_lines"`
	Resolved      int     `json:"resolved"`
	MissingPlates int     `json:"missing_plates"`
	Total         float64 `json:"total"`
	OutputFile    string  `json:"output_file"`
}

// FormatAny formats any data type for output according to the global
// flags, falling back to a reflective table.
func FormatAny(data any, globalFlags *globals.Flags) error {
	formatter := NewFormatter(DetectFormat(globalFlags.Output))
	return formatter.Format(os.Stdout, data)
}
