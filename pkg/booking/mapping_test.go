package booking_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costops/fleetbook/internal/xlsx"
	"github.com/costops/fleetbook/pkg/booking"
	"github.com/costops/fleetbook/pkg/errors"
	"github.com/costops/fleetbook/pkg/reconcile"
)

func writeMapping(t *testing.T, header []string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fleet_mapping_refreshed.xlsx")
	require.NoError(t, xlsx.WriteFile(path, header, rows))
	return path
}

func TestLoadMapping(t *testing.T) {
	path := writeMapping(t,
		[]string{"License Number", "Cost center", "FullName"},
		[][]any{
			{"MA-B 1234", "27100", "Anna Berger"},
			{"MAX9999", "27200", "Jan Weber"},
		})

	m, err := booking.LoadMapping(path)
	require.NoError(t, err)
	require.Len(t, m, 2)

	entry, ok := m["MAB1234"]
	require.True(t, ok, "plates are normalized on load")
	assert.Equal(t, "27100", entry.CostCenter)
	assert.Equal(t, "Anna Berger", entry.Driver)
}

func TestLoadMappingFirstWins(t *testing.T) {
	path := writeMapping(t,
		[]string{"License Number", "Cost center", "FullName"},
		[][]any{
			{"MAX1", "100", "First"},
			{"MAX1", "200", "Second"},
		})

	m, err := booking.LoadMapping(path)
	require.NoError(t, err)
	require.Len(t, m, 1)
	assert.Equal(t, "100", m["MAX1"].CostCenter)
}

func TestLoadMappingMissingColumns(t *testing.T) {
	path := writeMapping(t,
		[]string{"License Number", "FullName"},
		[][]any{{"MAX1", "Anna"}})

	_, err := booking.LoadMapping(path)
	require.Error(t, err)

	var colErr *errors.ColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, []string{"Cost center"}, colErr.Missing)
}

func TestMappingLookup(t *testing.T) {
	m := booking.Mapping{
		"MAX1": {Plate: "MAX1", CostCenter: "100"},
	}

	entry, err := m.Lookup("MAX1")
	require.NoError(t, err)
	assert.Equal(t, "100", entry.CostCenter)

	_, err = m.Lookup("MAX2")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestMappingFromRows(t *testing.T) {
	m := booking.MappingFromRows([]reconcile.MappingRow{
		{Plate: "MA-B 1234", Driver: "Anna Berger", CostCenter: "27100"},
		{Plate: "MAB1234", Driver: "Duplicate", CostCenter: "99999"},
		{Plate: "", Driver: "No plate", CostCenter: "1"},
	})

	require.Len(t, m, 1)
	assert.Equal(t, "27100", m["MAB1234"].CostCenter)
	assert.Equal(t, "Anna Berger", m["MAB1234"].Driver)
}
