package reconcile

import (
	"fmt"

	"github.com/costops/fleetbook/pkg/fleet"
)

// MappingRow links one license plate to a driver and a cost center.
// This is the hand-off record the invoice annotator joins against.
type MappingRow struct {
	Plate      string
	Driver     string
	CostCenter string
}

// Mismatch is a matched driver whose fleet and HR cost centers differ.
// Reported for review, never fatal: a department change usually shows
// up here first.
type Mismatch struct {
	Assignment fleet.Assignment
	HRName     string
	Score      int
	FleetCC    string
	HRCC       string
	HRCCDesc   string
}

// Statistics summarizes one reconciliation run.
type Statistics struct {
	FleetRows  int
	RosterRows int
	Matched    int
}

// Result represents the outcome of one reconciliation run. The three
// slices are disjoint views over the fleet export, each in input
// order.
type Result struct {
	// MissingInHR holds fleet drivers with a vehicle but no HR match.
	MissingInHR []fleet.Assignment

	// Mismatches holds matched drivers with disagreeing cost centers.
	Mismatches []Mismatch

	// Mapping holds one row per plate, cost center HR-preferred.
	Mapping []MappingRow

	Stats Statistics
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d fleet rows against %d HR rows: %d matched, %d missing in HR, %d cost-center mismatches, %d mapping rows",
		r.Stats.FleetRows, r.Stats.RosterRows, r.Stats.Matched,
		len(r.MissingInHR), len(r.Mismatches), len(r.Mapping))
}

// HasDiscrepancies reports whether anything needs human review.
func (r *Result) HasDiscrepancies() bool {
	return len(r.MissingInHR) > 0 || len(r.Mismatches) > 0
}
