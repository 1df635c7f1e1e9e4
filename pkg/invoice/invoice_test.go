package invoice_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/costops/fleetbook/pkg/errors"
	"github.com/costops/fleetbook/pkg/invoice"
)

// writeLatin1 writes a latin1-encoded fixture the way vendor portals
// produce them.
func writeLatin1(t *testing.T, content string) string {
	t.Helper()
	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "invoice.csv")
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0o644))
	return path
}

const fixture = `Rechnung;Datum;Kennzeichen;USt;Wert incl. USt.1
RG-123456789012;15.03.2025;;;
;;;;
;;;;
;;;;
;;MA-B 1234;19%;1.234,56
;;MA X 9999;7%;89,90
;;;19%;12,00
;;MA-B 1234;19%;10,00
`

func TestReadFile(t *testing.T) {
	path := writeLatin1(t, fixture)

	f, err := invoice.ReadFile(context.Background(), path, invoice.Options{})
	require.NoError(t, err)

	// The plateless line is dropped, duplicates are kept.
	require.Len(t, f.Lines, 3)

	assert.Equal(t, "MAB1234", f.Lines[0].Plate)
	assert.Equal(t, "MA-B 1234", f.Lines[0].RawPlate)
	assert.InDelta(t, 1234.56, f.Lines[0].Gross, 0.001)
	assert.Equal(t, invoice.TaxCodeStandard, f.Lines[0].TaxCode)

	assert.Equal(t, "MAX9999", f.Lines[1].Plate)
	assert.InDelta(t, 89.90, f.Lines[1].Gross, 0.001)
	assert.Equal(t, invoice.TaxCodeOther, f.Lines[1].TaxCode)

	assert.Equal(t, "MAB1234", f.Lines[2].Plate)

	// Original columns stay reachable by header name.
	assert.Equal(t, "MA-B 1234", f.Lines[0].Fields["Kennzeichen"])
	assert.Equal(t, "1.234,56", f.Lines[0].Fields["Wert incl. USt.1"])
}

func TestReadFileNoMetaRows(t *testing.T) {
	path := writeLatin1(t, `Rechnung;Datum;Kennzeichen;USt;Wert incl. USt.1
;;MA-B 1234;19%;10,00
;;MA X 9999;7%;20,00
`)

	f, err := invoice.ReadFile(context.Background(), path, invoice.Options{MetaRows: invoice.MetaRowsNone})
	require.NoError(t, err)

	// No detail line may be eaten by the metadata skip.
	require.Len(t, f.Lines, 2)
	assert.Equal(t, "MAB1234", f.Lines[0].Plate)
	assert.Equal(t, "MAX9999", f.Lines[1].Plate)
	assert.False(t, f.Meta.HasDate)
}

func TestReadFileMetadata(t *testing.T) {
	path := writeLatin1(t, fixture)

	f, err := invoice.ReadFile(context.Background(), path, invoice.Options{})
	require.NoError(t, err)

	assert.True(t, f.Meta.HasDate)
	assert.Equal(t, "15.03.2025", f.Meta.DateString())
	// Nine digits of RG-123456789012, prefixed with the 2-digit year.
	assert.Equal(t, "25/123456789", f.Meta.DocumentNo)
}

func TestReadFileMissingPlateColumn(t *testing.T) {
	path := writeLatin1(t, "Rechnung;Datum;Wert incl. USt.1\n;;\n")

	_, err := invoice.ReadFile(context.Background(), path, invoice.Options{})
	var colErr *errors.ColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "INVOICE", colErr.Label)
	assert.Equal(t, []string{invoice.ColPlate}, colErr.Missing)
}

func TestReadFileColumnInferenceBySubstring(t *testing.T) {
	content := "Rechnungsnr;Kfz-Kennzeichen;USt;Wert brutto\nRG-1;;;\n;;;\n;;;\n;;;\n;MA-B 1;19%;5,00\n"
	path := writeLatin1(t, content)

	f, err := invoice.ReadFile(context.Background(), path, invoice.Options{})
	require.NoError(t, err)
	require.Len(t, f.Lines, 1)
	assert.Equal(t, "MAB1", f.Lines[0].Plate)
	assert.InDelta(t, 5.0, f.Lines[0].Gross, 0.001)
}

func TestReadFileLatin1Umlauts(t *testing.T) {
	content := "Rechnung;Datum;Kennzeichen;USt;Wert incl. USt.1;Träger\nRG-1;01.01.2025;;;;\n;;;;;\n;;;;;\n;;;;;\n;;MÜ-X 1;19%;1,00;Münchner Straße\n"
	path := writeLatin1(t, content)

	f, err := invoice.ReadFile(context.Background(), path, invoice.Options{})
	require.NoError(t, err)
	require.Len(t, f.Lines, 1)
	assert.Equal(t, "MÜX1", f.Lines[0].Plate)
}

func TestReadFileMissing(t *testing.T) {
	_, err := invoice.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), invoice.Options{})
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestReadFileBadEncoding(t *testing.T) {
	path := writeLatin1(t, fixture)
	_, err := invoice.ReadFile(context.Background(), path, invoice.Options{Encoding: "ebcdic"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
