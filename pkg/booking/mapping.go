// Package booking turns a vendor invoice into a booking-ready export
// for the accounting system, using the refreshed plate-to-cost-center
// mapping from the reconciler. The whole batch either resolves or it
// doesn't: a single unknown plate stops the export and produces a
// diagnostic instead.
package booking

import (
	"fmt"

	"github.com/costops/fleetbook/internal/xlsx"
	"github.com/costops/fleetbook/pkg/errors"
	"github.com/costops/fleetbook/pkg/fleet"
	"github.com/costops/fleetbook/pkg/reconcile"
)

// Entry is one mapping record keyed by normalized plate.
type Entry struct {
	Plate      string
	Driver     string
	CostCenter string
}

// Mapping resolves normalized plates to cost centers.
type Mapping map[string]Entry

// Lookup resolves a normalized plate to its mapping entry.
func (m Mapping) Lookup(plate string) (Entry, error) {
	entry, ok := m[plate]
	if !ok {
		return Entry{}, fmt.Errorf("license plate %s: %w", plate, errors.ErrNotFound)
	}
	return entry, nil
}

// LoadMapping reads a fleet_mapping_refreshed.xlsx file back in.
// Duplicate plates keep their first occurrence; rows without a plate
// are dropped.
func LoadMapping(path string) (Mapping, error) {
	table, err := xlsx.ReadFile(path)
	if err != nil {
		return nil, err
	}

	bind, err := table.Bind("MAPPING",
		[]string{reconcile.MappingColPlate, reconcile.MappingColCostCenter},
		[]string{reconcile.MappingColDriver},
	)
	if err != nil {
		return nil, err
	}

	m := make(Mapping)
	for _, row := range table.Rows {
		plate := fleet.NormalizePlate(bind.Value(row, reconcile.MappingColPlate))
		if plate == "" {
			continue
		}
		if _, exists := m[plate]; exists {
			continue
		}
		m[plate] = Entry{
			Plate:      plate,
			Driver:     bind.Value(row, reconcile.MappingColDriver),
			CostCenter: bind.Value(row, reconcile.MappingColCostCenter),
		}
	}

	return m, nil
}

// MappingFromRows builds a Mapping straight from reconciler output,
// used when both stages run in one process without the file hand-off.
func MappingFromRows(rows []reconcile.MappingRow) Mapping {
	m := make(Mapping, len(rows))
	for _, row := range rows {
		plate := fleet.NormalizePlate(row.Plate)
		if plate == "" {
			continue
		}
		if _, exists := m[plate]; exists {
			continue
		}
		m[plate] = Entry{Plate: plate, Driver: row.Driver, CostCenter: row.CostCenter}
	}
	return m
}
