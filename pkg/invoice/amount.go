package invoice

import (
	"strconv"
	"strings"

	"github.com/costops/fleetbook/pkg/errors"
)

// ParseAmount converts a German-formatted number like "1.234,56" to
// 1234.56. Dots are thousands separators and are always dropped, the
// decimal comma becomes a point; that means "1.234" reads as 1234, not
// as a fraction. Vendor exports are consistently German-formatted.
func ParseAmount(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, &errors.ValidationError{Field: "amount", Value: s, Message: "empty value"}
	}

	s = strings.ReplaceAll(raw, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &errors.ValidationError{Field: "amount", Value: s, Message: "not a number"}
	}
	return n, nil
}

// FormatAmount renders an amount the way the accounting import expects
// it: two decimals, comma as the decimal separator, no thousands
// grouping.
func FormatAmount(n float64) string {
	return strings.Replace(strconv.FormatFloat(n, 'f', 2, 64), ".", ",", 1)
}
