package fleet

import "strings"

// NormalizePlate canonicalizes a license plate: spaces and hyphens are
// stripped and the rest is uppercased, so "MA-B 1234" and "mab1234"
// join as the same key. Returns "" for blank input. The invoice side
// uses the same function, which is what makes the plate join exact.
func NormalizePlate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ToUpper(s)
}

// SplitPlates parses the licenses cell of a fleet export row. Fleet
// exports pack multiple plates into one comma-separated cell.
func SplitPlates(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var plates []string
	for _, p := range strings.Split(raw, ",") {
		if cleaned := NormalizePlate(p); cleaned != "" {
			plates = append(plates, cleaned)
		}
	}
	return plates
}
