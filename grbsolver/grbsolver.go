// Package grbsolver solves the PLCP formulation with Gurobi.
package grbsolver

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.solver4all.com/azaryc2s/gorobi/gurobi"
	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
	"github.com/pkg/errors"
)

const Name = "GUROBI"

func init() {
	plcp.Register(Name, func() plcp.Solver { return &Solver{} })
}

type Solver struct{}

func (s *Solver) Name() string { return Name }

// Solve builds the model, exports it next to the other engines' models and
// optimizes it within opts.TimeLimit seconds.
func (s *Solver) Solve(f *plcp.Formulation, opts plcp.SolveOptions) (*plcp.Solution, error) {
	if err := os.MkdirAll(opts.ModelDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "couldn't create %s", opts.ModelDir)
	}
	env, err := gurobi.LoadEnv(filepath.Join(opts.ModelDir, "gurobi.log"))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't start gurobi")
	}
	defer env.Free()

	output := int32(0)
	if opts.Verbose {
		output = 1
	}
	if err = env.SetIntParam("OutputFlag", output); err != nil {
		return nil, errors.Wrap(err, "couldn't set OutputFlag")
	}
	if err = env.SetDblParam("TimeLimit", float64(opts.TimeLimit)); err != nil {
		return nil, errors.Wrap(err, "couldn't set TimeLimit")
	}
	threads, _ := env.GetIntParam(gurobi.INT_PAR_THREADS)
	plcp.Log(3, "gurobi: %s with %d threads", f.Name, threads)

	model, err := env.NewModel("PLCP_"+f.Name, 0, nil, nil, nil, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't create model")
	}
	defer model.Free()

	obj := f.Objective()
	for k := 0; k < f.NumVars(); k++ {
		if err = model.AddVar(nil, nil, obj[k], 0.0, 1.0, gurobi.BINARY, f.VarName(k)); err != nil {
			return nil, errors.Wrapf(err, "couldn't add %s", f.VarName(k))
		}
	}
	if err = model.SetIntAttr(gurobi.INT_ATTR_MODELSENSE, gurobi.MINIMIZE); err != nil {
		return nil, errors.Wrap(err, "couldn't set the model sense")
	}
	for _, row := range f.Rows() {
		if err = model.AddConstr(gurobi.Int32Slice(row.Ind), row.Val, sense(row.Sense), row.Rhs, row.Name); err != nil {
			return nil, errors.Wrapf(err, "couldn't add %s", row.Name)
		}
	}

	lpName := plcp.ModelPath(opts.ModelDir, f.Name, Name)
	if err = model.Write(lpName); err != nil {
		return nil, errors.Wrapf(err, "couldn't write %s", lpName)
	}

	startTime := time.Now()
	if err = model.Optimize(); err != nil {
		return nil, errors.Wrap(err, "optimization failed")
	}
	elapsed := time.Since(startTime).Seconds()

	optimstatus, err := model.GetIntAttr(gurobi.INT_ATTR_STATUS)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't capture the status")
	}

	// ObjVal is only available with an incumbent
	var lb, ub *float64
	var x []float64
	if objval, err := model.GetDblAttr(gurobi.DBL_ATTR_OBJVAL); err == nil {
		ub = plcp.Float(objval)
		if bound, err := model.GetDblAttr(gurobi.DBL_ATTR_OBJBOUND); err == nil {
			lb = plcp.Float(bound)
		}
		if f.NumVars() > 0 {
			x, err = model.GetDblAttrArray(gurobi.DBL_ATTR_X, 0, int32(f.NumVars()))
			if err != nil {
				return nil, errors.Wrap(err, "couldn't retrieve the solution")
			}
		}
	}

	sol := plcp.NewSolution(f, lb, ub, x, elapsed, lpName)
	sol.Status = statusString(optimstatus)
	sol.Optimal = optimstatus == gurobi.OPTIMAL
	return sol, nil
}

func sense(s string) int8 {
	switch s {
	case plcp.SENSE_LESS_EQUAL:
		return gurobi.LESS_EQUAL
	case plcp.SENSE_EQUAL:
		return gurobi.EQUAL
	}
	return gurobi.GREATER_EQUAL
}

func statusString(status int32) string {
	switch status {
	case gurobi.OPTIMAL:
		return "OPTIMAL"
	case gurobi.TIME_LIMIT:
		return "TIME_LIMIT"
	case gurobi.INFEASIBLE:
		return "INFEASIBLE"
	case gurobi.INF_OR_UNBD:
		return "INF_OR_UNBD"
	}
	return fmt.Sprintf("stopped before the time limit without an optimal solution (status %d)", status)
}
