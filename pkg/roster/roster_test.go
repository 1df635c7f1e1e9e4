package roster_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costops/fleetbook/internal/xlsx"
	"github.com/costops/fleetbook/pkg/errors"
	"github.com/costops/fleetbook/pkg/roster"
)

func writeRoster(t *testing.T, header []string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hr.xlsx")
	require.NoError(t, xlsx.WriteFile(path, header, rows))
	return path
}

func TestLoad(t *testing.T) {
	path := writeRoster(t,
		[]string{"Vorname", "Nachname", "Kostenstelle", "Bezeichnung d.KST"},
		[][]any{
			{"Max", "Huber", "27100", "Vertrieb Süd"},
			{"Anna", "Berger", "27200", "Logistik"},
			{"", "", "27300", "Leer"}, // no name, dropped
		},
	)

	r, err := roster.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"Max Huber", "Anna Berger"}, r.Names())

	e, ok := r.ByName("Anna Berger")
	require.True(t, ok)
	assert.Equal(t, "27200", e.CostCenter)
	assert.Equal(t, "Logistik", e.CostCenterDesc)
}

func TestLoadWithoutDescription(t *testing.T) {
	path := writeRoster(t,
		[]string{"Vorname", "Nachname", "Kostenstelle"},
		[][]any{{"Max", "Huber", "27100"}},
	)

	r, err := roster.Load(path)
	require.NoError(t, err)

	e, ok := r.ByName("Max Huber")
	require.True(t, ok)
	assert.Empty(t, e.CostCenterDesc)
}

func TestLoadDuplicateNamesFirstWins(t *testing.T) {
	path := writeRoster(t,
		[]string{"Vorname", "Nachname", "Kostenstelle"},
		[][]any{
			{"Max", "Huber", "27100"},
			{"Max", "Huber", "99999"},
		},
	)

	r, err := roster.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Max Huber"}, r.Names())

	e, _ := r.ByName("Max Huber")
	assert.Equal(t, "27100", e.CostCenter)
}

func TestLoadMissingColumns(t *testing.T) {
	path := writeRoster(t, []string{"Vorname", "Irgendwas"}, nil)

	_, err := roster.Load(path)
	var colErr *errors.ColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "HR", colErr.Label)
	assert.ElementsMatch(t, []string{"Nachname", "Kostenstelle"}, colErr.Missing)
}
