package fleet_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costops/fleetbook/internal/xlsx"
	"github.com/costops/fleetbook/pkg/errors"
	"github.com/costops/fleetbook/pkg/fleet"
)

func TestNormalizePlate(t *testing.T) {
	cases := map[string]string{
		"MA-B 1234":  "MAB1234",
		" ma b 1234": "MAB1234",
		"MAB1234":    "MAB1234",
		"":           "",
		"  ":         "",
		"- ":         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, fleet.NormalizePlate(in), "NormalizePlate(%q)", in)
	}
}

func TestSplitPlates(t *testing.T) {
	assert.Equal(t, []string{"MAB1234", "MAX9999"}, fleet.SplitPlates("MA-B 1234, max 9999"))
	assert.Equal(t, []string{"MAB1234"}, fleet.SplitPlates("MAB1234,"))
	assert.Nil(t, fleet.SplitPlates("  "))
	assert.Nil(t, fleet.SplitPlates(""))
}

func TestAssignment(t *testing.T) {
	a := fleet.Assignment{FirstName: " Max ", LastName: "Huber", Plates: []string{"MAB1234"}}
	assert.Equal(t, "Max Huber", a.FullName())
	assert.True(t, a.HasVehicle())
	assert.False(t, a.IsPool())

	pool := fleet.Assignment{FirstName: "Poolwagen", LastName: "Halle 2"}
	assert.True(t, pool.IsPool())
	assert.False(t, pool.HasVehicle())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.xlsx")
	require.NoError(t, xlsx.WriteFile(path,
		[]string{"First name", "Name", "License Numbers", "Cost center"},
		[][]any{
			{"Max", "Huber", "MA-B 1234, MA-X 9999", "27100"},
			{"Anna", "Berger", "", "27200"},
		},
	))

	e, err := fleet.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, e.Len())

	assert.Equal(t, []string{"MAB1234", "MAX9999"}, e.Assignments[0].Plates)
	assert.Equal(t, "27100", e.Assignments[0].CostCenter)
	assert.False(t, e.Assignments[1].HasVehicle())
}

func TestLoadMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.xlsx")
	require.NoError(t, xlsx.WriteFile(path, []string{"First name", "Name"}, nil))

	_, err := fleet.Load(path)
	var colErr *errors.ColumnError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, "FLEET", colErr.Label)
	assert.ElementsMatch(t, []string{"License Numbers", "Cost center"}, colErr.Missing)
}
