package plcp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
)

func toyFormulation(t *testing.T) *plcp.Formulation {
	inst := toyInstance(t)
	return plcp.NewFormulation(inst, plcp.BuildCoverageMatrix(inst, 2), plcp.MinDemand(inst, 0.5))
}

func TestComputeGap(t *testing.T) {
	gap := plcp.ComputeGap(plcp.Float(90), plcp.Float(100))
	require.NotNil(t, gap)
	assert.InDelta(t, 10.0, *gap, 1e-12)

	gap = plcp.ComputeGap(plcp.Float(0), plcp.Float(0))
	require.NotNil(t, gap)
	assert.Equal(t, 0.0, *gap)

	assert.Nil(t, plcp.ComputeGap(nil, plcp.Float(5)))
	assert.Nil(t, plcp.ComputeGap(plcp.Float(5), nil))
}

func TestMinDemand(t *testing.T) {
	inst := toyInstance(t)
	assert.Equal(t, 10.0, plcp.TotalDemand(inst))
	assert.Equal(t, 5.0, plcp.MinDemand(inst, 0.5))
}

func TestFormatRadius(t *testing.T) {
	assert.Equal(t, "5.5", plcp.FormatRadius(5.5))
	assert.Equal(t, "5.75", plcp.FormatRadius(5.75))
	assert.Equal(t, "6.0", plcp.FormatRadius(6))
}

func TestFormulation_Rows(t *testing.T) {
	f := toyFormulation(t)
	require.Equal(t, 4, f.NumVars())
	assert.Equal(t, []float64{10, 20, 0, 0}, f.Objective())

	rows := f.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, plcp.Row{Name: "cov_0", Ind: []int{0, 2}, Val: []float64{1, -1}, Sense: plcp.SENSE_GREATER_EQUAL, Rhs: 0}, rows[0])
	assert.Equal(t, plcp.Row{Name: "cov_1", Ind: []int{1, 3}, Val: []float64{1, -1}, Sense: plcp.SENSE_GREATER_EQUAL, Rhs: 0}, rows[1])
	assert.Equal(t, plcp.Row{Name: "demand", Ind: []int{2, 3}, Val: []float64{5, 5}, Sense: plcp.SENSE_GREATER_EQUAL, Rhs: 5}, rows[2])
}

func TestFormulation_VarNames(t *testing.T) {
	f := toyFormulation(t)
	for k := 0; k < f.NumVars(); k++ {
		idx, ok := f.VarIndex(f.VarName(k))
		require.True(t, ok)
		assert.Equal(t, k, idx)
	}
	assert.Equal(t, "z_1", f.VarName(3))
	for _, bad := range []string{"y_2", "z_-1", "y_1x", "x_0", ""} {
		_, ok := f.VarIndex(bad)
		assert.False(t, ok, bad)
	}
}

func TestNewSolution(t *testing.T) {
	f := toyFormulation(t)

	sol := plcp.NewSolution(f, plcp.Float(10), plcp.Float(10), []float64{0.9999, 1e-7, 1, 0}, 1.5, "m.lp")
	assert.Equal(t, []int{0}, sol.Opened)
	assert.Equal(t, []int{0}, sol.Covered)
	require.NotNil(t, sol.Gap)
	assert.Equal(t, 0.0, *sol.Gap)
	assert.Equal(t, 1.5, sol.Time)

	none := plcp.NewSolution(f, plcp.Float(3), nil, nil, 2, "m.lp")
	assert.Nil(t, none.LB)
	assert.Nil(t, none.UB)
	assert.Nil(t, none.Gap)
	assert.Empty(t, none.Opened)
	assert.Empty(t, none.Covered)

	unbounded := plcp.NewSolution(f, plcp.Float(math.Inf(-1)), plcp.Float(10), []float64{1, 0, 1, 0}, 2, "m.lp")
	assert.Nil(t, unbounded.LB)
	assert.Nil(t, unbounded.Gap)
	assert.NotNil(t, unbounded.UB)
}

func TestVerify(t *testing.T) {
	inst := toyInstance(t)
	cov := plcp.BuildCoverageMatrix(inst, 2)

	cost, demand, err := plcp.Verify(inst, cov, []int{0}, []int{0}, 5)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cost)
	assert.Equal(t, 5.0, demand)

	_, _, err = plcp.Verify(inst, cov, []int{0}, []int{1}, 5)
	assert.Error(t, err, "client 1 is out of reach of facility 0")

	_, _, err = plcp.Verify(inst, cov, []int{0}, []int{}, 5)
	assert.Error(t, err, "demand below minimum")

	_, _, err = plcp.Verify(inst, cov, []int{4}, nil, 0)
	assert.Error(t, err)
}

type fakeSolver struct{ name string }

func (s *fakeSolver) Name() string { return s.name }
func (s *fakeSolver) Solve(f *plcp.Formulation, opts plcp.SolveOptions) (*plcp.Solution, error) {
	return bruteForce(f), nil
}

func TestRegistry(t *testing.T) {
	plcp.Register("fake_registry", func() plcp.Solver { return &fakeSolver{name: "FAKE_REGISTRY"} })
	assert.Contains(t, plcp.Solvers(), "FAKE_REGISTRY")

	s, err := plcp.NewSolver("Fake_Registry")
	require.NoError(t, err)
	assert.Equal(t, "FAKE_REGISTRY", s.Name())

	_, err = plcp.NewSolver("nope")
	assert.Error(t, err)
	assert.Panics(t, func() {
		plcp.Register("FAKE_REGISTRY", func() plcp.Solver { return nil })
	})
}

func TestModelPath(t *testing.T) {
	assert.Equal(t, "out/models/inst_gurobi.lp", plcp.ModelPath("out/models", "inst", "GUROBI"))
}
