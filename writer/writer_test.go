package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"bprime/calculator"
	"bprime/model"
	"bprime/solver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallTable() (model.GridSpec, *model.FinalTable) {
	g := model.GridSpec{
		Temperatures: []float64{300, 400},
		Pressures:    []float64{1e5},
		BlowingRates: []float64{-1, 0, 1},
	}
	table := model.NewFinalTable(g)
	for j, bg := range g.BlowingRates {
		for i, t := range g.Temperatures {
			table.Set(0, j, i, model.OutputCell{
				Pressure:     1,
				Bg:           bg,
				Temperature:  t,
				AblationRate: bg + 2,
				WallEnthalpy: 10000,
			})
		}
	}
	return g, table
}

func TestWriteTableExact(t *testing.T) {
	_, table := smallTable()
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table))

	want := "// P (bar) Bg T (K) Bc Hw(kJ/kg)\n" +
		"1.0000000000E+00  -1.0000000000E+00  3.0000000000E+02  1.0000000000E+00  1.0000000000E+04  \n" +
		"1.0000000000E+00  -1.0000000000E+00  4.0000000000E+02  1.0000000000E+00  1.0000000000E+04  \n" +
		"\n" +
		"1.0000000000E+00  0.0000000000E+00  3.0000000000E+02  2.0000000000E+00  1.0000000000E+04  \n" +
		"1.0000000000E+00  0.0000000000E+00  4.0000000000E+02  2.0000000000E+00  1.0000000000E+04  \n" +
		"\n" +
		"1.0000000000E+00  1.0000000000E+00  3.0000000000E+02  3.0000000000E+00  1.0000000000E+04  \n" +
		"1.0000000000E+00  1.0000000000E+00  4.0000000000E+02  3.0000000000E+00  1.0000000000E+04  \n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTableSmallValues(t *testing.T) {
	table := model.NewFinalTable(model.GridSpec{
		Temperatures: []float64{250},
		Pressures:    []float64{101.325},
		BlowingRates: []float64{0},
	})
	table.Set(0, 0, 0, model.OutputCell{
		Pressure:     101.325 * model.PascalToBar,
		Temperature:  250,
		AblationRate: 1.5e-7,
		WallEnthalpy: -2345.5,
	})
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table))
	assert.Equal(t, "// P (bar) Bg T (K) Bc Hw(kJ/kg)\n"+
		"1.0132500000E-03  0.0000000000E+00  2.5000000000E+02  1.5000000000E-07  -2.3455000000E+03  \n\n",
		buf.String())
}

func TestWriteFile(t *testing.T) {
	_, table := smallTable()
	path := filepath.Join(t.TempDir(), "Bprime_table.bpt")
	require.NoError(t, WriteFile(path, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table))
	assert.Equal(t, buf.Bytes(), data)
}

func TestWriteFileBadPath(t *testing.T) {
	_, table := smallTable()
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "table.bpt"), table)
	assert.Error(t, err)
}

func TestManifest(t *testing.T) {
	g := model.GridSpec{
		Temperatures: []float64{300, 350, 400},
		Pressures:    []float64{1e3, 1e4, 1e5},
		BlowingRates: []float64{-0.5, 0, 0.5},
	}
	diag := &calculator.Diagnostics{Warnings: []calculator.Warning{{
		Kind:        calculator.KindExtrapolation,
		Pressure:    1e3,
		Temperature: 300,
		Count:       1,
		Lo:          -0.4,
		Hi:          0.5,
	}}}
	mix := solver.Mixture{Name: "tacot26.xml", BoundaryLayer: "edge", Pyrolysis: "pyro"}

	m := NewManifest("run-1", "Bprime_table.bpt", mix, g, diag)
	path := ManifestPath(filepath.Join(t.TempDir(), "Bprime_table.bpt"))
	require.NoError(t, WriteManifest(path, m))

	got, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, mix, got.Mixture)
	assert.Equal(t, 27, got.Rows)
	assert.True(t, m.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, diag.Warnings, got.Warnings)

	assert.Equal(t, 3, got.Grid.Pressures)
	assert.Equal(t, model.Range{Start: 300, Step: 50, End: 400}, got.Grid.Temperature)
	assert.Equal(t, model.Range{Start: 1e3, Step: 10, End: 1e5}, got.Grid.Pressure)
	assert.Equal(t, model.Range{Start: -0.5, Step: 0.5, End: 0.5}, got.Grid.BlowingRate)
}
