package reconcile

import (
	"strconv"
	"strings"
)

// SameCostCenter compares two cost-center values the way accounting
// reads them: numerically when both sides parse as numbers (so
// "27100.0" equals "27100"), as trimmed strings otherwise. A blank or
// unparsable value on one side only is always a difference worth
// reporting.
func SameCostCenter(a, b string) bool {
	na, okA := parseCostCenter(a)
	nb, okB := parseCostCenter(b)

	switch {
	case okA && okB:
		return na == nb
	case okA != okB:
		return false
	default:
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
}

func parseCostCenter(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
