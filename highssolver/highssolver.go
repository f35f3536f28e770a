// Package highssolver solves the PLCP formulation with the open source HiGHS
// MIP solver. It needs no license and serves as a reference engine.
package highssolver

import (
	"math"
	"os"
	"time"

	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
	"github.com/bartolsthoorn/gohighs/highs"
	"github.com/pkg/errors"
)

const Name = "HIGHS"

// HiGHS reports a feasible primal solution with this primal_solution_status.
const solutionFeasible = 2

func init() {
	plcp.Register(Name, func() plcp.Solver { return &Solver{} })
}

type Solver struct{}

func (s *Solver) Name() string { return Name }

// CSR holds the constraint matrix row-wise with row bounds.
type CSR struct {
	RowLower []float64
	RowUpper []float64
	Start    []int
	Index    []int
	Value    []float64
}

// BuildCSR converts the formulation rows for PassModel.
func BuildCSR(f *plcp.Formulation) CSR {
	var m CSR
	for _, row := range f.Rows() {
		m.Start = append(m.Start, len(m.Index))
		m.Index = append(m.Index, row.Ind...)
		m.Value = append(m.Value, row.Val...)
		lower, upper := math.Inf(-1), math.Inf(1)
		switch row.Sense {
		case plcp.SENSE_GREATER_EQUAL:
			lower = row.Rhs
		case plcp.SENSE_LESS_EQUAL:
			upper = row.Rhs
		default:
			lower, upper = row.Rhs, row.Rhs
		}
		m.RowLower = append(m.RowLower, lower)
		m.RowUpper = append(m.RowUpper, upper)
	}
	return m
}

func (s *Solver) Solve(f *plcp.Formulation, opts plcp.SolveOptions) (*plcp.Solution, error) {
	solver, err := highs.NewSolver()
	if err != nil {
		return nil, errors.Wrap(err, "couldn't start highs")
	}
	defer solver.Close()

	if err = solver.SetBoolOption("output_flag", opts.Verbose); err != nil {
		return nil, errors.Wrap(err, "couldn't set output_flag")
	}
	if err = solver.SetFloatOption("time_limit", float64(opts.TimeLimit)); err != nil {
		return nil, errors.Wrap(err, "couldn't set time_limit")
	}

	n := f.NumVars()
	lower := make([]float64, n)
	upper := make([]float64, n)
	integrality := make([]highs.VariableType, n)
	for k := range upper {
		upper[k] = 1
		integrality[k] = highs.Integer
	}
	m := BuildCSR(f)
	err = solver.PassModel(n, len(m.Start), f.Objective(), lower, upper,
		m.RowLower, m.RowUpper, m.Start, m.Index, m.Value, integrality, false, 0)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't pass the model")
	}

	if err = os.MkdirAll(opts.ModelDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "couldn't create %s", opts.ModelDir)
	}
	lpName := plcp.ModelPath(opts.ModelDir, f.Name, Name)
	if err = solver.WriteModel(lpName); err != nil {
		return nil, errors.Wrapf(err, "couldn't write %s", lpName)
	}

	startTime := time.Now()
	res, err := solver.Run()
	elapsed := time.Since(startTime).Seconds()
	if err != nil {
		return nil, errors.Wrap(err, "optimization failed")
	}

	var lb, ub *float64
	var x []float64
	if primal, err := solver.GetIntInfo("primal_solution_status"); err == nil && primal == solutionFeasible {
		ub = plcp.Float(res.Objective)
		x = res.ColValues
		if bound, err := solver.GetFloatInfo("mip_dual_bound"); err == nil {
			lb = plcp.Float(bound)
		}
	}
	sol := plcp.NewSolution(f, lb, ub, x, elapsed, lpName)
	sol.Status = res.Status.String()
	sol.Optimal = res.Status.IsOptimal()
	return sol, nil
}
