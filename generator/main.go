package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
)

var facilities plcp.ArrayIntFlags
var clients plcp.ArrayIntFlags

func main() {
	flag.Set("logtostderr", "true")
	flag.Var(&facilities, "n", "List of number of candidate facilities")
	flag.Var(&clients, "m", "List of number of clients")
	name := flag.String("name", "plcp", "Name prefix for the instances")
	count := flag.Int("count", 10, "Number of instances per combination")
	xTo := flag.Float64("x", 30, "Max value on the x-axis")
	yTo := flag.Float64("y", 30, "Max value on the y-axis")
	costTo := flag.Int("cost", 100, "Max opening cost of a facility")
	demandTo := flag.Int("demand", 50, "Max demand of a client")
	seed := flag.Int64("seed", 0, "Random seed. 0 seeds from the clock")
	outDir := flag.String("out_dir", "instances", "Directory the instances are written to")
	flag.Parse()

	if len(facilities) == 0 || len(clients) == 0 {
		plcp.Log(1, "At least one -n and one -m value are needed")
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		plcp.Log(1, "Couldn't create %s: %s", *outDir, err.Error())
		os.Exit(1)
	}

	for l := 0; l < *count; l++ {
		for _, n := range facilities {
			for _, m := range clients {
				inst := &plcp.Instance{Name: fmt.Sprintf("%s_%d_%d_%d", *name, n, m, l)}
				for i := 0; i < n; i++ {
					inst.Facilities = append(inst.Facilities, plcp.Facility{ID: i + 1,
						X: round2(rng.Float64() * *xTo), Y: round2(rng.Float64() * *yTo), Cost: float64(1 + rng.Intn(*costTo))})
				}
				for j := 0; j < m; j++ {
					inst.Clients = append(inst.Clients, plcp.Client{ID: j + 1,
						X: round2(rng.Float64() * *xTo), Y: round2(rng.Float64() * *yTo), Demand: float64(1 + rng.Intn(*demandTo))})
				}
				inst.NumFacilities, inst.NumClients = n, m
				if err := write(filepath.Join(*outDir, inst.Name+plcp.DefaultExtension), inst); err != nil {
					plcp.Log(1, "At %s: %s", inst.Name, err.Error())
					os.Exit(1)
				}
			}
		}
	}
	plcp.Log(2, "Generated %d instances with seed %d", *count*len(facilities)*len(clients), *seed)
}

func write(path string, inst *plcp.Instance) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = plcp.WriteInstance(file, inst); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
