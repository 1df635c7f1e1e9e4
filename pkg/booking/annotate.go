package booking

import (
	"context"
	"sort"
	"strings"

	"github.com/costops/fleetbook/internal/xlsx"
	"github.com/costops/fleetbook/pkg/invoice"
	"github.com/costops/fleetbook/pkg/logging"
)

// ResolvedLine is an invoice line annotated with its cost center.
type ResolvedLine struct {
	invoice.Line
	CostCenter string
	Driver     string
}

// Batch is the outcome of annotating one invoice against the mapping.
// Lines and Missing are mutually exclusive views of the run: when
// Missing is non-empty the batch must not be exported.
type Batch struct {
	// Lines holds every invoice line with its resolved cost center, in
	// original invoice order. Only meaningful when Resolved().
	Lines []ResolvedLine

	// Missing holds the distinct normalized plates without a mapping
	// entry, sorted.
	Missing []string
}

// Resolved reports whether every line found a cost center.
func (b *Batch) Resolved() bool {
	return len(b.Missing) == 0
}

// Total returns the gross sum over all lines.
func (b *Batch) Total() float64 {
	var sum float64
	for _, l := range b.Lines {
		sum += l.Gross
	}
	return sum
}

// Annotate joins invoice lines against the mapping by exact normalized
// plate. It never partially fails: the returned batch either resolves
// completely or names every missing plate. A mapping entry with a blank
// cost center counts as missing, the line could not be booked anywhere.
func Annotate(ctx context.Context, lines []invoice.Line, mapping Mapping) *Batch {
	logger := logging.FromContext(ctx)

	b := &Batch{}
	missing := make(map[string]bool)

	for _, line := range lines {
		entry, err := mapping.Lookup(line.Plate)
		if err != nil || strings.TrimSpace(entry.CostCenter) == "" {
			missing[line.Plate] = true
			continue
		}
		b.Lines = append(b.Lines, ResolvedLine{
			Line:       line,
			CostCenter: entry.CostCenter,
			Driver:     entry.Driver,
		})
	}

	for plate := range missing {
		b.Missing = append(b.Missing, plate)
	}
	sort.Strings(b.Missing)

	if !b.Resolved() {
		logger.Warn().
			Int("lines", len(lines)).
			Strs("missing_plates", b.Missing).
			Msg("Invoice lines without cost center mapping")
	} else {
		logger.Info().
			Int("lines", len(b.Lines)).
			Msg("All invoice lines resolved")
	}

	return b
}

// WriteMissing writes the diagnostic listing every unresolved plate.
func (b *Batch) WriteMissing(path string) error {
	rows := make([][]any, 0, len(b.Missing))
	for _, plate := range b.Missing {
		rows = append(rows, []any{plate})
	}
	return xlsx.WriteFile(path, []string{"License Number (standardized)"}, rows)
}
