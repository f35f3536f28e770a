package plcp

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	DefaultRadii   = []float64{5.5, 5.75, 6.0, 6.25}
	DefaultSolvers = []string{"GUROBI", "CPLEX"}
)

const (
	DefaultDemandFraction = 0.5
	DefaultTimeLimit      = 3600
	DefaultExtension      = ".dat"
)

// Config holds every parameter of a batch run.
type Config struct {
	InstDir         string    `json:"inst_dir"`
	OutDir          string    `json:"out_dir"`
	Extension       string    `json:"extension"`
	Radii           []float64 `json:"radii"`
	DemandFraction  float64   `json:"demand_fraction"`
	TimeLimit       int       `json:"time_limit"`
	Verbose         bool      `json:"verbose"`
	ContinueOnError bool      `json:"continue_on_error"`
	Solvers         []string  `json:"solvers"`
}

func DefaultConfig() Config {
	return Config{
		InstDir:        "instances",
		OutDir:         "results",
		Extension:      DefaultExtension,
		Radii:          append([]float64(nil), DefaultRadii...),
		DemandFraction: DefaultDemandFraction,
		TimeLimit:      DefaultTimeLimit,
		Solvers:        append([]string(nil), DefaultSolvers...),
	}
}

func (c Config) Validate() error {
	if len(c.Radii) == 0 {
		return errors.New("no radius given")
	}
	for _, r := range c.Radii {
		if r < 0 {
			return errors.Errorf("radius %v is negative", r)
		}
	}
	if c.DemandFraction < 0 || c.DemandFraction > 1 {
		return errors.Errorf("demand fraction %v is not in [0,1]", c.DemandFraction)
	}
	if c.TimeLimit <= 0 {
		return errors.Errorf("time limit %d is not positive", c.TimeLimit)
	}
	return nil
}

func (c Config) ModelDir() string    { return filepath.Join(c.OutDir, "models") }
func (c Config) SolutionDir() string { return filepath.Join(c.OutDir, "solutions") }
func (c Config) ResultsXLSX() string { return filepath.Join(c.OutDir, "results.xlsx") }
func (c Config) ResultsJSON() string { return filepath.Join(c.OutDir, "results.json") }

// Runner solves every instance for every radius with every solver, one run
// after the other.
type Runner struct {
	Config  Config
	Solvers []Solver
	// Out receives the progress lines, os.Stdout if nil.
	Out io.Writer
}

// NewRunner looks up the configured solvers in the registry.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{Config: cfg}
	for _, name := range cfg.Solvers {
		s, err := NewSolver(name)
		if err != nil {
			return nil, err
		}
		r.Solvers = append(r.Solvers, s)
	}
	if len(r.Solvers) == 0 {
		return nil, errors.New("no solver configured")
	}
	return r, nil
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// ListInstances returns the files of dir with the given extension in
// lexicographic order.
func ListInstances(dir, ext string) ([]string, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open directory %s", dir)
	}
	var paths []string
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, f.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Run processes the whole instance directory and writes results.xlsx and
// results.json. Records of the runs done so far are returned with the error.
func (r *Runner) Run() ([]Record, error) {
	paths, err := ListInstances(r.Config.InstDir, r.Config.Extension)
	if err != nil {
		return nil, err
	}
	Log(2, "Found %d instances in %s", len(paths), r.Config.InstDir)

	var records []Record
	for _, path := range paths {
		inst, err := ReadInstance(path)
		if err != nil {
			return records, err
		}
		recs, err := r.RunInstance(inst)
		records = append(records, recs...)
		if err != nil {
			return records, err
		}
	}

	if err = SaveResultsXLSX(records, r.Config.ResultsXLSX()); err != nil {
		return records, err
	}
	report := Report{Config: r.Config, System: GetSysInfo(), Records: records}
	if err = WriteResultsJSON(report, r.Config.ResultsJSON()); err != nil {
		return records, err
	}
	return records, nil
}

// RunInstance solves one instance for all radii and solvers.
func (r *Runner) RunInstance(inst *Instance) ([]Record, error) {
	minDemand := MinDemand(inst, r.Config.DemandFraction)
	Log(3, "%s: %d facilities, %d clients, total demand %.4f, D_min %.4f", inst.Name,
		inst.NumFacilities, inst.NumClients, TotalDemand(inst), minDemand)

	var records []Record
	for _, R := range r.Config.Radii {
		fmt.Fprintf(r.out(), "\n[%s] Running R=%s D=%s%% ...\n", inst.Name, FormatRadius(R), formatNumber(100*r.Config.DemandFraction))
		cov := BuildCoverageMatrix(inst, R)
		Log(3, "%s: coverage matrix for R=%s has %d entries", inst.Name, FormatRadius(R), cov.Count())
		form := NewFormulation(inst, cov, minDemand)

		for _, s := range r.Solvers {
			rec, err := r.runOne(s, inst, form, R)
			if err != nil {
				return records, err
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *Runner) runOne(s Solver, inst *Instance, form *Formulation, R float64) (Record, error) {
	opts := SolveOptions{TimeLimit: r.Config.TimeLimit, Verbose: r.Config.Verbose, ModelDir: r.Config.ModelDir()}
	sol, err := s.Solve(form, opts)
	if err != nil {
		err = errors.Wrapf(err, "%s failed on %s with R=%s", s.Name(), inst.Name, FormatRadius(R))
		if !r.Config.ContinueOnError {
			return Record{}, err
		}
		// only engine failures are recorded, I/O errors below stay fatal
		Log(1, "At %s: %s", inst.Name, err.Error())
		return Record{Instance: inst.Name, Solver: s.Name(), R: R, Comment: err.Error(), Failed: true}, nil
	}
	path, err := WriteSolutionTxt(r.Config.SolutionDir(), inst.Name, R, s.Name(), sol.Opened, sol.Covered)
	if err != nil {
		return Record{}, err
	}
	Log(2, "%s %s R=%s: UB=%s LB=%s GAP=%s TIME=%.2fs (%s)", inst.Name, s.Name(), FormatRadius(R),
		optString(sol.UB), optString(sol.LB), optString(sol.Gap), sol.Time, sol.Status)
	return Record{
		Instance:     inst.Name,
		Solver:       s.Name(),
		R:            R,
		LB:           sol.LB,
		UB:           sol.UB,
		Gap:          sol.Gap,
		Time:         sol.Time,
		Comment:      sol.Status,
		SolutionFile: path,
	}, nil
}

func optString(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatNumber(*v)
}
