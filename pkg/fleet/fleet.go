// Package fleet loads the fleet manager export: who currently drives
// which vehicles, and the cost center the fleet system believes each
// driver belongs to. Vehicle assignments may lag behind HR, which is
// exactly the discrepancy the reconciler reports on.
package fleet

import (
	"strings"

	"github.com/costops/fleetbook/internal/xlsx"
)

// Expected column names in the fleet manager export.
const (
	ColFirstName  = "First name"
	ColLastName   = "Name"
	ColLicenses   = "License Numbers"
	ColCostCenter = "Cost center"
)

// Assignment is one fleet export row: a driver with zero or more
// vehicles.
type Assignment struct {
	FirstName  string
	LastName   string
	CostCenter string
	RawPlates  string   // licenses column as exported
	Plates     []string // cleaned plates, in export order
}

// FullName returns "First Last" with blanks collapsed.
func (a Assignment) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
}

// HasVehicle reports whether the row carries at least one plate.
func (a Assignment) HasVehicle() bool {
	return len(a.Plates) > 0
}

// IsPool reports whether this is a pool vehicle entry rather than a
// personal assignment. The fleet system models pool cars as
// pseudo-drivers with "pool" somewhere in the name.
func (a Assignment) IsPool() bool {
	return strings.Contains(strings.ToLower(a.FullName()), "pool")
}

// Export is the loaded fleet snapshot for one run.
type Export struct {
	File        string
	Assignments []Assignment
}

// Load reads the fleet manager export from an .xlsx file. All four
// columns are required.
func Load(path string) (*Export, error) {
	table, err := xlsx.ReadFile(path)
	if err != nil {
		return nil, err
	}

	bind, err := table.Bind("FLEET",
		[]string{ColFirstName, ColLastName, ColLicenses, ColCostCenter},
		nil,
	)
	if err != nil {
		return nil, err
	}

	e := &Export{File: path}
	for _, row := range table.Rows {
		raw := bind.Value(row, ColLicenses)
		e.Assignments = append(e.Assignments, Assignment{
			FirstName:  bind.Value(row, ColFirstName),
			LastName:   bind.Value(row, ColLastName),
			CostCenter: bind.Value(row, ColCostCenter),
			RawPlates:  raw,
			Plates:     SplitPlates(raw),
		})
	}

	return e, nil
}

// Len returns the number of fleet rows.
func (e *Export) Len() int {
	return len(e.Assignments)
}
