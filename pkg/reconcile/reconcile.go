// Package reconcile compares the HR roster against the fleet export
// and produces the three reconciliation views: drivers missing from
// HR, cost-center mismatches, and the refreshed plate-to-cost-center
// mapping that the invoice export consumes.
package reconcile

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/costops/fleetbook/internal/matcher"
	"github.com/costops/fleetbook/pkg/errors"
	"github.com/costops/fleetbook/pkg/fleet"
	"github.com/costops/fleetbook/pkg/logging"
	"github.com/costops/fleetbook/pkg/roster"
)

// Reconciler matches fleet assignments against the HR roster.
type Reconciler struct {
	threshold   int
	excludePool bool
	logger      *zerolog.Logger
}

// New creates a Reconciler with options.
func New(opts ...Option) (*Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Reconciler{
		threshold:   options.threshold,
		excludePool: options.excludePool,
		logger:      options.logger,
	}, nil
}

// Run reconciles one fleet export against one HR roster. Both inputs
// must be non-empty; the result is a pure function of the inputs, so
// rerunning on identical files yields identical output.
func (r *Reconciler) Run(ctx context.Context, hr *roster.Roster, fl *fleet.Export) (*Result, error) {
	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	if hr == nil || hr.Len() == 0 {
		return nil, &errors.ValidationError{Field: "hr", Message: "HR roster is empty"}
	}
	if fl == nil || fl.Len() == 0 {
		return nil, &errors.ValidationError{Field: "fleet", Message: "fleet export is empty"}
	}

	m := matcher.New(hr.Names(), r.threshold)

	result := &Result{}
	result.Stats.FleetRows = fl.Len()
	result.Stats.RosterRows = hr.Len()

	for _, a := range fl.Assignments {
		hrName, score, matched := m.Best(a.FullName())

		if matched {
			result.Stats.Matched++
			r.checkCostCenter(result, a, hrName, score, hr)
		} else if a.HasVehicle() && !(r.excludePool && a.IsPool()) {
			// Unmatched drivers only matter when a car hangs on them.
			result.MissingInHR = append(result.MissingInHR, a)
		}

		r.appendMapping(result, a, hrName, matched, hr)
	}

	logger.Info().
		Int("fleet_rows", result.Stats.FleetRows).
		Int("hr_rows", result.Stats.RosterRows).
		Int("matched", result.Stats.Matched).
		Int("missing_in_hr", len(result.MissingInHR)).
		Int("mismatches", len(result.Mismatches)).
		Int("mapping_rows", len(result.Mapping)).
		Msg("Reconciliation complete")

	return result, nil
}

// checkCostCenter records a mismatch when the fleet and HR cost
// centers disagree for a matched driver.
func (r *Reconciler) checkCostCenter(result *Result, a fleet.Assignment, hrName string, score int, hr *roster.Roster) {
	emp, ok := hr.ByName(hrName)
	if !ok {
		return
	}

	if !SameCostCenter(a.CostCenter, emp.CostCenter) {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Assignment: a,
			HRName:     hrName,
			Score:      score,
			FleetCC:    a.CostCenter,
			HRCC:       emp.CostCenter,
			HRCCDesc:   emp.CostCenterDesc,
		})
	}
}

// appendMapping emits one mapping row per plate. The cost center comes
// from HR when the driver matched, and falls back to the fleet's own
// value otherwise so the mapping stays complete while discrepancies
// are still open. The fallback is a business-rule assumption: an
// unmatched driver's fleet cost center is the best available guess.
func (r *Reconciler) appendMapping(result *Result, a fleet.Assignment, hrName string, matched bool, hr *roster.Roster) {
	if !a.HasVehicle() {
		return
	}

	costCenter := a.CostCenter
	if matched {
		if emp, ok := hr.ByName(hrName); ok && emp.CostCenter != "" {
			costCenter = emp.CostCenter
		}
	}

	for _, plate := range a.Plates {
		result.Mapping = append(result.Mapping, MappingRow{
			Plate:      plate,
			Driver:     a.FullName(),
			CostCenter: costCenter,
		})
	}
}
