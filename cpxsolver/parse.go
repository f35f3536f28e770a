package cpxsolver

import (
	"encoding/xml"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SolutionFile is the part of a CPLEX .sol file the runner needs.
type SolutionFile struct {
	XMLName   xml.Name       `xml:"CPLEXSolution"`
	Header    SolutionHeader `xml:"header"`
	Variables []Variable     `xml:"variables>variable"`
}

type SolutionHeader struct {
	ProblemName          string   `xml:"problemName,attr"`
	ObjectiveValue       float64  `xml:"objectiveValue,attr"`
	SolutionStatusValue  int      `xml:"solutionStatusValue,attr"`
	SolutionStatusString string   `xml:"solutionStatusString,attr"`
	MIPRelativeGap       *float64 `xml:"MIPRelativeGap,attr"`
}

type Variable struct {
	Name  string  `xml:"name,attr"`
	Index int     `xml:"index,attr"`
	Value float64 `xml:"value,attr"`
}

// CPLEX MIP status codes that mean the incumbent is proven optimal.
var optimalStatus = map[int]bool{
	101: true, // integer optimal solution
	102: true, // integer optimal, tolerance
}

const mipOptimal = 101

func (s *SolutionFile) Optimal() bool {
	return optimalStatus[s.Header.SolutionStatusValue]
}

// Bound derives the best bound of a minimization from the header: the
// objective itself for a proven optimum, otherwise the objective less the
// relative MIP gap, which CPLEX measures against max(|obj|, 1e-10).
func (s *SolutionFile) Bound() (float64, bool) {
	obj := s.Header.ObjectiveValue
	if s.Header.SolutionStatusValue == mipOptimal {
		return obj, true
	}
	if s.Header.MIPRelativeGap == nil {
		return 0, false
	}
	return obj - *s.Header.MIPRelativeGap*math.Max(math.Abs(obj), 1e-10), true
}

func ParseSolution(r io.Reader) (*SolutionFile, error) {
	var sol SolutionFile
	if err := xml.NewDecoder(r).Decode(&sol); err != nil {
		return nil, errors.Wrap(err, "couldn't parse cplex solution")
	}
	return &sol, nil
}

var (
	bestBoundRe = regexp.MustCompile(`(?m)^\s*Current MIP best bound\s*=\s*([-+0-9.eE]+)`)
	statusRe    = regexp.MustCompile(`(?m)^\s*MIP\s*-\s*(.+?)\.?\s*$`)
)

// ParseBestBound returns the last best bound CPLEX printed on the console.
func ParseBestBound(out string) (float64, bool) {
	m := bestBoundRe.FindAllStringSubmatch(out, -1)
	if len(m) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[len(m)-1][1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseStatus returns the last "MIP - ..." status line of the console.
func ParseStatus(out string) string {
	m := statusRe.FindAllStringSubmatch(out, -1)
	if len(m) == 0 {
		return ""
	}
	status := m[len(m)-1][1]
	if k := strings.Index(status, ":"); k >= 0 {
		status = strings.TrimSpace(status[:k])
	}
	return status
}

// NoIncumbent reports whether the console says no integer solution exists.
func NoIncumbent(out string) bool {
	lower := strings.ToLower(out)
	return strings.Contains(lower, "no integer solution") || strings.Contains(lower, "no solution exists")
}

// ConsoleError extracts the first CPLEX error message of the console.
func ConsoleError(out string) error {
	k := strings.Index(out, "CPLEX Error")
	if k < 0 {
		return nil
	}
	msg := out[k:]
	if e := strings.IndexByte(msg, '\n'); e >= 0 {
		msg = msg[:e]
	}
	return errors.New(strings.TrimSpace(msg))
}
