package booking_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/costops/fleetbook/pkg/booking"
	"github.com/costops/fleetbook/pkg/invoice"
)

func line(plate string, gross float64, taxCode int) invoice.Line {
	return invoice.Line{RawPlate: plate, Plate: plate, Gross: gross, TaxCode: taxCode}
}

func TestAnnotateAllResolved(t *testing.T) {
	mapping := booking.Mapping{
		"PLATE1": {Plate: "PLATE1", Driver: "Anna Berger", CostCenter: "27100"},
		"PLATE2": {Plate: "PLATE2", Driver: "Jan Weber", CostCenter: "27200"},
	}
	lines := []invoice.Line{
		line("PLATE1", 100.50, invoice.TaxCodeStandard),
		line("PLATE2", 49.50, invoice.TaxCodeOther),
	}

	b := booking.Annotate(context.Background(), lines, mapping)

	require.True(t, b.Resolved())
	require.Len(t, b.Lines, 2)
	assert.Equal(t, "27100", b.Lines[0].CostCenter)
	assert.Equal(t, "Anna Berger", b.Lines[0].Driver)
	assert.Equal(t, "27200", b.Lines[1].CostCenter)
	assert.InDelta(t, 150.00, b.Total(), 0.001)
}

func TestAnnotateMissingPlateBlocksBatch(t *testing.T) {
	mapping := booking.Mapping{
		"PLATE1": {Plate: "PLATE1", CostCenter: "CC100"},
	}
	lines := []invoice.Line{
		line("PLATE1", 10, invoice.TaxCodeStandard),
		line("PLATE9", 20, invoice.TaxCodeStandard),
	}

	b := booking.Annotate(context.Background(), lines, mapping)

	assert.False(t, b.Resolved())
	assert.Equal(t, []string{"PLATE9"}, b.Missing)
}

func TestAnnotateBlankCostCenterBlocksBatch(t *testing.T) {
	mapping := booking.Mapping{
		"PLATE1": {Plate: "PLATE1", Driver: "Anna Berger", CostCenter: ""},
		"PLATE2": {Plate: "PLATE2", Driver: "Jan Weber", CostCenter: "  "},
		"PLATE3": {Plate: "PLATE3", Driver: "Mia Brandt", CostCenter: "27300"},
	}
	lines := []invoice.Line{
		line("PLATE1", 10, invoice.TaxCodeStandard),
		line("PLATE2", 20, invoice.TaxCodeStandard),
		line("PLATE3", 30, invoice.TaxCodeStandard),
	}

	b := booking.Annotate(context.Background(), lines, mapping)

	// A mapped plate without a cost center cannot be booked, so it
	// lands in the diagnostic like an unmapped one.
	assert.False(t, b.Resolved())
	assert.Equal(t, []string{"PLATE1", "PLATE2"}, b.Missing)
	require.Len(t, b.Lines, 1)
	assert.Equal(t, "PLATE3", b.Lines[0].Plate)
}

func TestAnnotateMissingPlatesDistinctAndSorted(t *testing.T) {
	lines := []invoice.Line{
		line("ZZZ9", 1, invoice.TaxCodeStandard),
		line("AAA1", 2, invoice.TaxCodeStandard),
		line("ZZZ9", 3, invoice.TaxCodeStandard),
	}

	b := booking.Annotate(context.Background(), lines, booking.Mapping{})

	assert.Equal(t, []string{"AAA1", "ZZZ9"}, b.Missing)
}

func TestAnnotateKeepsInvoiceOrder(t *testing.T) {
	mapping := booking.Mapping{
		"A1": {Plate: "A1", CostCenter: "1"},
		"B2": {Plate: "B2", CostCenter: "2"},
	}
	lines := []invoice.Line{
		line("B2", 1, invoice.TaxCodeStandard),
		line("A1", 2, invoice.TaxCodeStandard),
		line("B2", 3, invoice.TaxCodeStandard),
	}

	b := booking.Annotate(context.Background(), lines, mapping)

	require.Len(t, b.Lines, 3)
	assert.Equal(t, "B2", b.Lines[0].Plate)
	assert.Equal(t, "A1", b.Lines[1].Plate)
	assert.Equal(t, "B2", b.Lines[2].Plate)
}

func TestWriteMissing(t *testing.T) {
	b := booking.Annotate(context.Background(), []invoice.Line{
		line("MAX1", 1, invoice.TaxCodeStandard),
	}, booking.Mapping{})

	path := filepath.Join(t.TempDir(), "missing_costcenters.xlsx")
	require.NoError(t, b.WriteMissing(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "License Number (standardized)", rows[0][0])
	assert.Equal(t, "MAX1", rows[1][0])
}
