package xlsx_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costops/fleetbook/internal/xlsx"
	"github.com/costops/fleetbook/pkg/errors"
)

func writeFixture(t *testing.T, header []string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, xlsx.WriteFile(path, header, rows))
	return path
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := writeFixture(t,
		[]string{"License Number", "Cost center", "FullName"},
		[][]any{
			{"MAB1234", "27100", "Anna Berger"},
			{"MAX9999", "27200", "Max Huber"},
		},
	)

	table, err := xlsx.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"License Number", "Cost center", "FullName"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "MAB1234", table.Rows[0][0])
	assert.Equal(t, "Anna Berger", table.Rows[0][2])
}

func TestReadFileMissing(t *testing.T) {
	_, err := xlsx.ReadFile(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestBindMatchesLooseHeaders(t *testing.T) {
	path := writeFixture(t,
		[]string{" first NAME ", "Name", "License  Numbers", "Cost center"},
		[][]any{{"Anna", "Berger", "MA B 1234", "27100"}},
	)

	table, err := xlsx.ReadFile(path)
	require.NoError(t, err)

	b, err := table.Bind("FLEET", []string{"First name", "Name", "License Numbers", "Cost center"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Anna", b.Value(table.Rows[0], "First name"))
	assert.Equal(t, "MA B 1234", b.Value(table.Rows[0], "License Numbers"))
}

func TestBindReportsAllMissingColumns(t *testing.T) {
	path := writeFixture(t, []string{"Vorname", "Nachname"}, nil)

	table, err := xlsx.ReadFile(path)
	require.NoError(t, err)

	_, err = table.Bind("HR", []string{"Vorname", "Nachname", "Kostenstelle"}, []string{"Bezeichnung d.KST"})
	require.Error(t, err)

	var colErr *errors.ColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "HR", colErr.Label)
	assert.Equal(t, []string{"Kostenstelle"}, colErr.Missing)
}

func TestBindOptionalColumn(t *testing.T) {
	path := writeFixture(t, []string{"Vorname", "Nachname", "Kostenstelle"}, [][]any{{"Anna", "Berger", "27100"}})

	table, err := xlsx.ReadFile(path)
	require.NoError(t, err)

	b, err := table.Bind("HR", []string{"Vorname", "Nachname", "Kostenstelle"}, []string{"Bezeichnung d.KST"})
	require.NoError(t, err)

	assert.False(t, b.Has("Bezeichnung d.KST"))
	assert.Equal(t, "", b.Value(table.Rows[0], "Bezeichnung d.KST"))
}

func TestValueHandlesShortRows(t *testing.T) {
	path := writeFixture(t, []string{"A", "B", "C"}, [][]any{{"only-a"}})

	table, err := xlsx.ReadFile(path)
	require.NoError(t, err)

	b, err := table.Bind("TEST", []string{"A", "C"}, nil)
	require.NoError(t, err)

	// excelize trims trailing empty cells from rows.
	assert.Equal(t, "only-a", b.Value(table.Rows[0], "A"))
	assert.Equal(t, "", b.Value(table.Rows[0], "C"))
}
