package plcp

import "math"

// CoverageMatrix is the binary facility x client table for one radius.
type CoverageMatrix struct {
	rows, cols int
	data       []uint8
	R          float64
}

// BuildCoverageMatrix marks (i,j) when facility i is within distance R of
// client j, boundary included.
func BuildCoverageMatrix(inst *Instance, R float64) *CoverageMatrix {
	nFac, nCli := len(inst.Facilities), len(inst.Clients)
	a := &CoverageMatrix{rows: nFac, cols: nCli, data: make([]uint8, nFac*nCli), R: R}
	for i, f := range inst.Facilities {
		for j, c := range inst.Clients {
			if Distance(f.X, f.Y, c.X, c.Y) <= R {
				a.data[i*nCli+j] = 1
			}
		}
	}
	return a
}

// Distance is the planar euclidean distance. math.Hypot scales before
// squaring, so it neither overflows nor loses tiny differences.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

// Dims returns (facilities, clients).
func (a *CoverageMatrix) Dims() (int, int) {
	return a.rows, a.cols
}

func (a *CoverageMatrix) At(i, j int) int {
	return int(a.data[i*a.cols+j])
}

func (a *CoverageMatrix) Covers(i, j int) bool {
	return a.data[i*a.cols+j] == 1
}

// CoveringFacilities lists the facilities able to serve client j.
func (a *CoverageMatrix) CoveringFacilities(j int) []int {
	var res []int
	for i := 0; i < a.rows; i++ {
		if a.data[i*a.cols+j] == 1 {
			res = append(res, i)
		}
	}
	return res
}

// Count returns the number of 1 entries.
func (a *CoverageMatrix) Count() int {
	n := 0
	for _, v := range a.data {
		n += int(v)
	}
	return n
}
