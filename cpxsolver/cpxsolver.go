// Package cpxsolver solves the PLCP formulation with the CPLEX interactive
// optimizer driven through a command file.
package cpxsolver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
	"github.com/pkg/errors"
)

const Name = "CPLEX"

// DefaultBinary is looked up in PATH.
const DefaultBinary = "cplex"

func init() {
	plcp.Register(Name, func() plcp.Solver { return &Solver{Binary: DefaultBinary} })
}

type Solver struct {
	Binary string
}

func (s *Solver) Name() string { return Name }

// WriteCommands writes the interactive optimizer script: read the model,
// bound the run time, optimize and dump the solution.
func WriteCommands(w io.Writer, lpFile, solFile string, timeLimit int) error {
	_, err := fmt.Fprintf(w, "read %s lp\nset timelimit %d\noptimize\nwrite %s sol\nquit\n", lpFile, timeLimit, solFile)
	return errors.Wrap(err, "couldn't write cplex commands")
}

func (s *Solver) Solve(f *plcp.Formulation, opts plcp.SolveOptions) (*plcp.Solution, error) {
	lpName := plcp.ModelPath(opts.ModelDir, f.Name, Name)
	if err := plcp.WriteLPFile(lpName, f); err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(lpName, filepath.Ext(lpName))
	solName := base + ".sol"
	cmdName := base + ".cmd"

	//a stale solution would be read as this run's result
	if _, err := os.Stat(solName); err == nil {
		if err = os.Remove(solName); err != nil {
			return nil, errors.Wrap(err, "couldn't remove the old solution file")
		}
	}
	cmdFile, err := os.Create(cmdName)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't create command file")
	}
	if err = WriteCommands(cmdFile, lpName, solName, opts.TimeLimit); err != nil {
		cmdFile.Close()
		return nil, err
	}
	if err = cmdFile.Close(); err != nil {
		return nil, errors.Wrap(err, "couldn't close command file")
	}

	binary := s.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	var out bytes.Buffer
	cmd := exec.Command(binary, "-f", cmdName)
	if opts.Verbose {
		cmd.Stdout = io.MultiWriter(os.Stdout, &out)
	} else {
		cmd.Stdout = &out
	}
	cmd.Stderr = cmd.Stdout

	startTime := time.Now()
	err = cmd.Run()
	elapsed := time.Since(startTime).Seconds()
	if err != nil {
		return nil, errors.Wrapf(err, "exec of %s failed", binary)
	}
	console := out.String()
	if strings.Contains(console, "1016: Promotional version") {
		return nil, errors.New("problem too large for the promotional version of cplex")
	}
	//writing the solution fails with an error when there is no incumbent
	if !NoIncumbent(console) {
		if err = ConsoleError(console); err != nil {
			return nil, err
		}
	}
	return readResult(f, console, solName, lpName, elapsed)
}

func readResult(f *plcp.Formulation, console, solName, lpName string, elapsed float64) (*plcp.Solution, error) {
	status := ParseStatus(console)
	file, err := os.Open(solName)
	if os.IsNotExist(err) || NoIncumbent(console) {
		if err == nil {
			file.Close()
		}
		sol := plcp.NewSolution(f, nil, nil, nil, elapsed, lpName)
		sol.Status = status
		return sol, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open cplex solution")
	}
	defer file.Close()

	parsed, err := ParseSolution(file)
	if err != nil {
		return nil, err
	}
	x := make([]float64, f.NumVars())
	for _, v := range parsed.Variables {
		if k, ok := f.VarIndex(v.Name); ok {
			x[k] = v.Value
		}
	}
	ub := plcp.Float(parsed.Header.ObjectiveValue)
	var lb *float64
	if bound, ok := ParseBestBound(console); ok {
		lb = plcp.Float(bound)
	} else if bound, ok := parsed.Bound(); ok {
		lb = plcp.Float(bound)
	}

	sol := plcp.NewSolution(f, lb, ub, x, elapsed, lpName)
	sol.Optimal = parsed.Optimal()
	sol.Status = parsed.Header.SolutionStatusString
	if sol.Status == "" {
		sol.Status = status
	}
	return sol, nil
}
