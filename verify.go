package plcp

import "github.com/pkg/errors"

// demand comparisons tolerate solver feasibility slack
const demandTolerance = 1e-6

// Verify checks a solution against its instance: every covered client must
// be in reach of an opened facility and the covered demand must reach
// minDemand. It returns the opening cost and the covered demand.
func Verify(inst *Instance, cov *CoverageMatrix, opened, covered []int, minDemand float64) (cost, demand float64, err error) {
	nFac, nCli := cov.Dims()
	isOpen := make([]bool, nFac)
	for _, i := range opened {
		if i < 0 || i >= nFac {
			return 0, 0, errors.Errorf("facility %d does not exist", i+1)
		}
		if isOpen[i] {
			return 0, 0, errors.Errorf("facility %d opened twice", i+1)
		}
		isOpen[i] = true
		cost += inst.Facilities[i].Cost
	}
	seen := make([]bool, nCli)
	for _, j := range covered {
		if j < 0 || j >= nCli {
			return cost, demand, errors.Errorf("client %d does not exist", j+1)
		}
		if seen[j] {
			return cost, demand, errors.Errorf("client %d covered twice", j+1)
		}
		seen[j] = true
		reached := false
		for _, i := range cov.CoveringFacilities(j) {
			if isOpen[i] {
				reached = true
				break
			}
		}
		if !reached {
			return cost, demand, errors.Errorf("client %d is not in reach of an opened facility", j+1)
		}
		demand += inst.Clients[j].Demand
	}
	if demand < minDemand-demandTolerance {
		return cost, demand, errors.Errorf("covered demand %.4f is below the minimum %.4f", demand, minDemand)
	}
	return cost, demand, nil
}
