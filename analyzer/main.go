package main

import (
	"flag"
	"fmt"
	"math"
	"path/filepath"

	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
)

// analyzer re-checks every solution file listed in a results.json against its
// instance and prints one CSV line per run.
func main() {
	flag.Set("logtostderr", "true")
	resultsF := flag.String("results", "results/results.json", "Path to the results.json written by the solver")
	instDir := flag.String("inst_dir", "", "Directory of the instances. By default the one recorded in the results")
	logLvl := flag.Int("log", 2, "Log level. 1 errors only, 3 everything")
	flag.Parse()
	plcp.InitLoggers(*logLvl)

	rep, err := plcp.ReadResultsJSON(*resultsF)
	if err != nil {
		plcp.Log(1, "At %s: %s", *resultsF, err.Error())
		return
	}
	if *instDir == "" {
		*instDir = rep.Config.InstDir
	}
	ext := rep.Config.Extension
	if ext == "" {
		ext = plcp.DefaultExtension
	}

	instances := map[string]*plcp.Instance{}
	fmt.Printf("Name,Solver,R,Optimal,Time,UB,LB,Gap,Cost,CoveredDemand,MinDemand,Comment\n")
	for _, rec := range rep.Records {
		inst, ok := instances[rec.Instance]
		if !ok {
			inst, err = plcp.ReadInstance(filepath.Join(*instDir, rec.Instance+ext))
			if err != nil {
				plcp.Log(1, "Couldn't read %s: %s", rec.Instance, err.Error())
				return
			}
			instances[rec.Instance] = inst
		}
		minDemand := plcp.MinDemand(inst, rep.Config.DemandFraction)
		comment := rec.Comment
		var cost, demand float64
		if rec.SolutionFile == "" {
			comment += " ANALYZER: no solution file"
		} else if opened, covered, err := plcp.ReadSolutionTxt(rec.SolutionFile); err != nil {
			comment += fmt.Sprintf(" ANALYZER: Error = %s", err.Error())
		} else if rec.UB != nil {
			cov := plcp.BuildCoverageMatrix(inst, rec.R)
			cost, demand, err = plcp.Verify(inst, cov, opened, covered, minDemand)
			if err != nil {
				comment += fmt.Sprintf(" ANALYZER: Error = %s", err.Error())
			} else if math.Abs(cost-*rec.UB) > 1e-6*math.Max(1, math.Abs(*rec.UB)) {
				comment += fmt.Sprintf(" ANALYZER: cost %s differs from UB", fmtOpt(&cost))
			}
		}
		optimal := rec.Gap != nil && *rec.Gap < 1e-4
		fmt.Printf("%s,%s,%s,%t,%.4f,%s,%s,%s,%s,%s,%s,%s\n", rec.Instance, rec.Solver, plcp.FormatRadius(rec.R),
			optimal, rec.Time, fmtOpt(rec.UB), fmtOpt(rec.LB), fmtOpt(rec.Gap),
			fmtOpt(&cost), fmtOpt(&demand), fmtOpt(&minDemand), comment)
	}
}

func fmtOpt(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.4f", *v)
}
