package plcp

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const (
	SENSE_GREATER_EQUAL = ">="
	SENSE_LESS_EQUAL    = "<="
	SENSE_EQUAL         = "="
)

// Formulation is the engine independent binary program:
//
//	min  sum_i cost_i * y_i
//	s.t. sum_i A_ij * y_i - z_j >= 0      for every client j
//	     sum_j d_j * z_j        >= D_min
//	     y, z binary
//
// Column i is y_i, column NumFacilities()+j is z_j.
type Formulation struct {
	Name      string
	Costs     []float64
	Demands   []float64
	Coverage  *CoverageMatrix
	MinDemand float64
}

// Row is one linear constraint over the formulation columns.
type Row struct {
	Name  string
	Ind   []int
	Val   []float64
	Sense string
	Rhs   float64
}

func NewFormulation(inst *Instance, cov *CoverageMatrix, minDemand float64) *Formulation {
	f := &Formulation{
		Name:      inst.Name,
		Costs:     make([]float64, len(inst.Facilities)),
		Demands:   make([]float64, len(inst.Clients)),
		Coverage:  cov,
		MinDemand: minDemand,
	}
	for i, fac := range inst.Facilities {
		f.Costs[i] = fac.Cost
	}
	for j, c := range inst.Clients {
		f.Demands[j] = c.Demand
	}
	return f
}

func (f *Formulation) NumFacilities() int { return len(f.Costs) }
func (f *Formulation) NumClients() int    { return len(f.Demands) }
func (f *Formulation) NumVars() int       { return len(f.Costs) + len(f.Demands) }

func (f *Formulation) OpenVar(i int) int  { return i }
func (f *Formulation) CoverVar(j int) int { return len(f.Costs) + j }

// VarName names column k: y_i for facilities, z_j for clients.
func (f *Formulation) VarName(k int) string {
	if k < len(f.Costs) {
		return fmt.Sprintf("y_%d", k)
	}
	return fmt.Sprintf("z_%d", k-len(f.Costs))
}

// VarIndex is the inverse of VarName.
func (f *Formulation) VarIndex(name string) (int, bool) {
	if rest, ok := strings.CutPrefix(name, "y_"); ok {
		k, err := strconv.Atoi(rest)
		if err == nil && k >= 0 && k < len(f.Costs) {
			return k, true
		}
	}
	if rest, ok := strings.CutPrefix(name, "z_"); ok {
		k, err := strconv.Atoi(rest)
		if err == nil && k >= 0 && k < len(f.Demands) {
			return len(f.Costs) + k, true
		}
	}
	return 0, false
}

// Objective returns the cost of every column.
func (f *Formulation) Objective() []float64 {
	obj := make([]float64, f.NumVars())
	copy(obj, f.Costs)
	return obj
}

// Rows returns the coverage rows cov_j followed by the demand row.
func (f *Formulation) Rows() []Row {
	rows := make([]Row, 0, f.NumClients()+1)
	for j := 0; j < f.NumClients(); j++ {
		row := Row{Name: fmt.Sprintf("cov_%d", j), Sense: SENSE_GREATER_EQUAL, Rhs: 0}
		for _, i := range f.Coverage.CoveringFacilities(j) {
			row.Ind = append(row.Ind, f.OpenVar(i))
			row.Val = append(row.Val, 1.0)
		}
		row.Ind = append(row.Ind, f.CoverVar(j))
		row.Val = append(row.Val, -1.0)
		rows = append(rows, row)
	}
	demand := Row{Name: "demand", Sense: SENSE_GREATER_EQUAL, Rhs: f.MinDemand}
	for j, d := range f.Demands {
		demand.Ind = append(demand.Ind, f.CoverVar(j))
		demand.Val = append(demand.Val, d)
	}
	rows = append(rows, demand)
	return rows
}

// Extract rounds column values to the opened facilities and covered clients.
func (f *Formulation) Extract(x []float64) (opened, covered []int) {
	opened, covered = []int{}, []int{}
	for i := 0; i < f.NumFacilities() && f.OpenVar(i) < len(x); i++ {
		if x[f.OpenVar(i)] > 0.5 {
			opened = append(opened, i)
		}
	}
	for j := 0; j < f.NumClients() && f.CoverVar(j) < len(x); j++ {
		if x[f.CoverVar(j)] > 0.5 {
			covered = append(covered, j)
		}
	}
	return opened, covered
}

// NewSolution builds the result shape every engine returns. A nil ub means
// no incumbent, in which case bound, gap and the index sets are dropped.
func NewSolution(f *Formulation, lb, ub *float64, x []float64, elapsed float64, modelFile string) *Solution {
	sol := &Solution{Time: elapsed, ModelFile: modelFile, Opened: []int{}, Covered: []int{}}
	if ub == nil {
		return sol
	}
	if lb != nil && (math.IsInf(*lb, 0) || math.IsNaN(*lb)) {
		lb = nil
	}
	sol.UB = ub
	sol.LB = lb
	sol.Gap = ComputeGap(lb, ub)
	sol.Opened, sol.Covered = f.Extract(x)
	return sol
}

type SolveOptions struct {
	TimeLimit int
	Verbose   bool
	ModelDir  string
}

// Solver is an external optimization engine.
type Solver interface {
	Name() string
	Solve(f *Formulation, opts SolveOptions) (*Solution, error)
}

// ModelPath is where an engine exports the model of an instance.
func ModelPath(dir, instance, engine string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.lp", instance, strings.ToLower(engine)))
}

var (
	solversMu sync.Mutex
	solvers   = map[string]func() Solver{}
)

// Register makes an engine available under name. Engine packages call it
// from init.
func Register(name string, factory func() Solver) {
	solversMu.Lock()
	defer solversMu.Unlock()
	name = strings.ToUpper(name)
	if _, dup := solvers[name]; dup {
		panic("plcp: Register called twice for solver " + name)
	}
	solvers[name] = factory
}

func NewSolver(name string) (Solver, error) {
	solversMu.Lock()
	defer solversMu.Unlock()
	factory, ok := solvers[strings.ToUpper(name)]
	if !ok {
		return nil, errors.Errorf("unknown solver %s (available: %s)", name, strings.Join(solverNames(), ", "))
	}
	return factory(), nil
}

func Solvers() []string {
	solversMu.Lock()
	defer solversMu.Unlock()
	return solverNames()
}

func solverNames() []string {
	names := make([]string, 0, len(solvers))
	for n := range solvers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
