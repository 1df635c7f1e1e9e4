package reconcile

import (
	"path/filepath"
	"strconv"

	"github.com/costops/fleetbook/internal/xlsx"
)

// Output file names, fixed so the invoice export and the accounting
// team always know what to look for.
const (
	MissingInHRFile = "missing_in_hr.xlsx"
	MismatchFile    = "costcenter_mismatch.xlsx"
	MappingFile     = "fleet_mapping_refreshed.xlsx"
)

// Mapping file column names. The invoice annotator reads these back.
const (
	MappingColPlate      = "License Number"
	MappingColCostCenter = "Cost center"
	MappingColDriver     = "FullName"
)

// OutputPaths lists where WriteOutputs put the three views.
type OutputPaths struct {
	MissingInHR string
	Mismatches  string
	Mapping     string
}

// WriteOutputs writes the three reconciliation views as .xlsx files
// into dir. All three files are always written, even when empty, so a
// clean run is distinguishable from a run that never happened.
func (r *Result) WriteOutputs(dir string) (*OutputPaths, error) {
	paths := &OutputPaths{
		MissingInHR: filepath.Join(dir, MissingInHRFile),
		Mismatches:  filepath.Join(dir, MismatchFile),
		Mapping:     filepath.Join(dir, MappingFile),
	}

	missing := make([][]any, 0, len(r.MissingInHR))
	for _, a := range r.MissingInHR {
		missing = append(missing, []any{a.FirstName, a.LastName, a.FullName(), a.RawPlates})
	}
	if err := xlsx.WriteFile(paths.MissingInHR,
		[]string{"First name", "Name", "FullName", "License Numbers"},
		missing,
	); err != nil {
		return nil, err
	}

	mismatches := make([][]any, 0, len(r.Mismatches))
	for _, mm := range r.Mismatches {
		mismatches = append(mismatches, []any{
			mm.Assignment.FullName(),
			mm.HRName,
			strconv.Itoa(mm.Score),
			mm.FleetCC,
			mm.HRCC,
			mm.HRCCDesc,
			mm.Assignment.RawPlates,
		})
	}
	if err := xlsx.WriteFile(paths.Mismatches,
		[]string{"FullName", "HR_MatchName", "HR_MatchScore", "Cost center", "HR_Kostenstelle", "HR_Bezeichnung_d_KST", "License Numbers"},
		mismatches,
	); err != nil {
		return nil, err
	}

	mapping := make([][]any, 0, len(r.Mapping))
	for _, row := range r.Mapping {
		mapping = append(mapping, []any{row.Plate, row.CostCenter, row.Driver})
	}
	if err := xlsx.WriteFile(paths.Mapping,
		[]string{MappingColPlate, MappingColCostCenter, MappingColDriver},
		mapping,
	); err != nil {
		return nil, err
	}

	return paths, nil
}
