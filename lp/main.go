package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
	"github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial/cpxsolver"
	_ "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial/grbsolver"
	_ "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial/highssolver"
)

// lp solves a single instance for one radius with one engine.
func main() {
	flag.Set("logtostderr", "true")
	inputF := flag.String("input", "", "Path to the instance")
	r := flag.Float64("r", plcp.DefaultRadii[0], "Coverage radius")
	engine := flag.String("solver", "GUROBI", "Engine to use")
	demand := flag.Float64("demand", plcp.DefaultDemandFraction, "Fraction of the total demand that must be covered")
	timeLimit := flag.Int("time_limit", plcp.DefaultTimeLimit, "Time limit in seconds")
	outDir := flag.String("out_dir", "results", "Directory for the model and the solution")
	verbose := flag.Bool("verbose", false, "Show the engine's own output")
	writeJSON := flag.Bool("json", false, "Also write the full solution as json")
	cplexBin := flag.String("cplex", cpxsolver.DefaultBinary, "Path to the cplex interactive optimizer")
	logLvl := flag.Int("log", 2, "Log level. 1 errors only, 3 everything")
	flag.Parse()
	plcp.InitLoggers(*logLvl)

	if *inputF == "" && flag.NArg() > 0 {
		*inputF = flag.Arg(0)
	}
	inst, err := plcp.ReadInstance(*inputF)
	if err != nil {
		plcp.Log(1, "At %s: %s", *inputF, err.Error())
		os.Exit(1)
	}
	s, err := plcp.NewSolver(*engine)
	if err != nil {
		plcp.Log(1, "%s", err.Error())
		os.Exit(2)
	}
	if cpx, ok := s.(*cpxsolver.Solver); ok {
		cpx.Binary = *cplexBin
	}

	cov := plcp.BuildCoverageMatrix(inst, *r)
	form := plcp.NewFormulation(inst, cov, plcp.MinDemand(inst, *demand))
	sol, err := s.Solve(form, plcp.SolveOptions{TimeLimit: *timeLimit, Verbose: *verbose, ModelDir: filepath.Join(*outDir, "models")})
	if err != nil {
		plcp.Log(1, "At %s: %s", *inputF, err.Error())
		os.Exit(1)
	}
	plcp.Log(2, "---OPTIMIZATION DONE--- %s", sol.Status)

	path, err := plcp.WriteSolutionTxt(filepath.Join(*outDir, "solutions"), inst.Name, *r, s.Name(), sol.Opened, sol.Covered)
	if err != nil {
		plcp.Log(1, "At %s: %s", *inputF, err.Error())
		os.Exit(1)
	}
	if sol.UB == nil {
		fmt.Printf("No feasible solution found for %s with R=%s in %.2fs\n", inst.Name, plcp.FormatRadius(*r), sol.Time)
	} else {
		fmt.Printf("Opened %d facilities covering %d clients with cost %s (LB %s, GAP %s%%) in %.2fs\n",
			len(sol.Opened), len(sol.Covered), fmtOpt(sol.UB), fmtOpt(sol.LB), fmtOpt(sol.Gap), sol.Time)
	}
	fmt.Printf("Solution written to %s\n", path)

	if *writeJSON {
		jsonSol, err := json.MarshalIndent(sol, "", "\t")
		if err != nil {
			plcp.Log(1, "At %s: %s", *inputF, err.Error())
			os.Exit(1)
		}
		jsonSol = []byte(plcp.SanitizeJsonArrayLineBreaks(string(jsonSol)))
		jsonName := strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
		if err = ioutil.WriteFile(jsonName, jsonSol, 0644); err != nil {
			plcp.Log(1, "At %s: %s", *inputF, err.Error())
			os.Exit(1)
		}
	}
}

func fmtOpt(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *v)
}
