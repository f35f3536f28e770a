package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
	"github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial/cpxsolver"
	_ "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial/grbsolver"
	_ "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial/highssolver"
	"github.com/pkg/errors"
)

var (
	radii   plcp.ArrayFloatFlags
	solvers plcp.ArrayStringFlags
)

func main() {
	flag.Set("logtostderr", "true")
	cfg := plcp.DefaultConfig()

	flag.Var(&radii, "r", "Coverage radius. Repeat for several radii (default 5.5 5.75 6.0 6.25)")
	flag.Var(&solvers, "solvers", fmt.Sprintf("Engines to run, in order. One of %s (default GUROBI CPLEX)", strings.Join(plcp.Solvers(), ", ")))
	flag.StringVar(&cfg.InstDir, "inst_dir", cfg.InstDir, "Directory with the instance files")
	flag.StringVar(&cfg.OutDir, "out_dir", cfg.OutDir, "Directory for models, solutions and results")
	flag.StringVar(&cfg.Extension, "ext", cfg.Extension, "Extension of the instance files")
	flag.IntVar(&cfg.TimeLimit, "time_limit", cfg.TimeLimit, "Time limit per run in seconds")
	flag.Float64Var(&cfg.DemandFraction, "demand", cfg.DemandFraction, "Fraction of the total demand that must be covered")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Show the engines' own output")
	flag.BoolVar(&cfg.ContinueOnError, "keep_going", false, "Record a failed run and go on instead of stopping")
	cplexBin := flag.String("cplex", cpxsolver.DefaultBinary, "Path to the cplex interactive optimizer")
	logLvl := flag.Int("log", 2, "Log level. 1 errors only, 3 everything")
	flag.Parse()
	plcp.InitLoggers(*logLvl)

	if len(radii) > 0 {
		cfg.Radii = radii
	}
	if len(solvers) > 0 {
		cfg.Solvers = solvers
	}

	runner, err := plcp.NewRunner(cfg)
	if err != nil {
		plcp.Log(1, "%s", err.Error())
		os.Exit(2)
	}
	for _, s := range runner.Solvers {
		if cpx, ok := s.(*cpxsolver.Solver); ok {
			cpx.Binary = *cplexBin
		}
	}

	records, err := runner.Run()
	if err != nil {
		if fe, ok := errors.Cause(err).(*plcp.FormatError); ok {
			plcp.Log(1, "Invalid instance %s at line %d: %s", fe.Path, fe.Line, fe.Msg)
		} else {
			plcp.Log(1, "%s", err.Error())
		}
		plcp.Log(2, "Stopped after %d runs", len(records))
		os.Exit(1)
	}
	fmt.Printf("\nDone: %d runs\n", len(records))
}
