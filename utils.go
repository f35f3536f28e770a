package plcp

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
	"gonum.org/v1/gonum/floats"
)

// GapEpsilon keeps the gap finite when the incumbent is exactly zero.
const GapEpsilon = 1e-9

func TotalDemand(inst *Instance) float64 {
	d := make([]float64, len(inst.Clients))
	for j, c := range inst.Clients {
		d[j] = c.Demand
	}
	return floats.Sum(d)
}

// MinDemand is the demand that has to be covered for the given fraction.
func MinDemand(inst *Instance, fraction float64) float64 {
	return fraction * TotalDemand(inst)
}

// ComputeGap returns 100*|UB-LB|/max(|UB|, eps), or nil if a bound is unset.
func ComputeGap(lb, ub *float64) *float64 {
	if lb == nil || ub == nil {
		return nil
	}
	gap := 100 * math.Abs(*ub-*lb) / math.Max(math.Abs(*ub), GapEpsilon)
	return &gap
}

func Float(v float64) *float64 {
	return &v
}

// FormatRadius renders R the way the solution files are named: 5.5, 6.0.
func FormatRadius(r float64) string {
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if r == math.Trunc(r) && !math.IsInf(r, 0) {
		s += ".0"
	}
	return s
}

// GetSysInfo collects platform, cpu and memory info. Missing values are
// left empty.
func GetSysInfo() SysInfo {
	var info SysInfo
	if hostStat, err := host.Info(); err == nil {
		info.Platform = hostStat.Platform
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		info.CPU = cpuStat[0].ModelName
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", vmStat.Total/1024/1024/1024)
	}
	return info
}

func SanitizeJsonArrayLineBreaks(json string) string {
	res := fmt.Sprintf("%s", json)
	var numbers = regexp.MustCompile(`\s*([-]?[0-9]+(\.[0-9]+)?),\s+([-]?[0-9]+(\.[0-9]+)?)(,)?`)
	var brackets = regexp.MustCompile(`\[(([-]?[0-9]+(\.[0-9]+)?,)+[-]?[0-9]+(\.[0-9]+)?)\s+\](,?)(\s+)`)
	for numbers.MatchString(res) {
		res = numbers.ReplaceAllString(res, "$1,$3$5")
	}
	for brackets.MatchString(res) {
		res = brackets.ReplaceAllString(res, "[$1]$5$6")
	}
	return res
}
