package plcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/stat"
)

const AVERAGE_LABEL = "MÉDIA"

var ResultsHeader = []string{"Instância", "Solver", "R", "LB", "UB", "GAP", "TIME"}

// SolutionFileName is <inst>_R<R>_<SOLVER>.txt
func SolutionFileName(instance string, r float64, solver string) string {
	return fmt.Sprintf("%s_R%s_%s.txt", instance, FormatRadius(r), solver)
}

// WriteSolutionTxt writes the opened facilities on the first line and the
// covered clients on the second, both converted to 1-based numbers.
func WriteSolutionTxt(dir, instance string, r float64, solver string, opened, covered []int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "couldn't create %s", dir)
	}
	path := filepath.Join(dir, SolutionFileName(instance, r, solver))
	content := joinOneBased(opened) + "\n" + joinOneBased(covered) + "\n"
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		return "", errors.Wrapf(err, "couldn't write %s", path)
	}
	return path, nil
}

func joinOneBased(idx []int) string {
	s := make([]string, len(idx))
	for k, v := range idx {
		s[k] = strconv.Itoa(v + 1)
	}
	return strings.Join(s, " ")
}

// ReadSolutionTxt reads a file written by WriteSolutionTxt back into 0-based
// indices.
func ReadSolutionTxt(path string) (opened, covered []int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "couldn't open solution")
	}
	defer file.Close()

	var lines [][]int
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() && len(lines) < 2 {
		var idx []int
		for _, tok := range strings.Fields(scanner.Text()) {
			v, err := strconv.Atoi(tok)
			if err != nil || v < 1 {
				return nil, nil, errors.Errorf("%s: invalid index %q", path, tok)
			}
			idx = append(idx, v-1)
		}
		lines = append(lines, idx)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrapf(err, "couldn't read %s", path)
	}
	for len(lines) < 2 {
		lines = append(lines, nil)
	}
	return lines[0], lines[1], nil
}

// Averages holds the column means of the results table over the runs that
// did not fail. A column without any value stays nil.
type Averages struct {
	R    *float64
	LB   *float64
	UB   *float64
	Gap  *float64
	Time *float64
}

func Average(records []Record) Averages {
	var r, lb, ub, gap, t []float64
	for _, rec := range records {
		if rec.Failed {
			continue
		}
		r = append(r, rec.R)
		t = append(t, rec.Time)
		if rec.LB != nil {
			lb = append(lb, *rec.LB)
		}
		if rec.UB != nil {
			ub = append(ub, *rec.UB)
		}
		if rec.Gap != nil {
			gap = append(gap, *rec.Gap)
		}
	}
	return Averages{R: mean(r), LB: mean(lb), UB: mean(ub), Gap: mean(gap), Time: mean(t)}
}

func mean(x []float64) *float64 {
	if len(x) == 0 {
		return nil
	}
	return Float(stat.Mean(x, nil))
}

func cellValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// SaveResultsXLSX writes one row per record plus the MÉDIA row.
func SaveResultsXLSX(records []Record, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "couldn't create %s", filepath.Dir(path))
	}
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	rows := make([][]interface{}, 0, len(records)+2)
	header := make([]interface{}, len(ResultsHeader))
	for k, h := range ResultsHeader {
		header[k] = h
	}
	rows = append(rows, header)
	for _, rec := range records {
		var t interface{} = rec.Time
		if rec.Failed {
			t = nil
		}
		rows = append(rows, []interface{}{rec.Instance, rec.Solver, rec.R, cellValue(rec.LB), cellValue(rec.UB), cellValue(rec.Gap), t})
	}
	avg := Average(records)
	rows = append(rows, []interface{}{AVERAGE_LABEL, nil, cellValue(avg.R), cellValue(avg.LB), cellValue(avg.UB), cellValue(avg.Gap), cellValue(avg.Time)})

	for k, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, k+1)
		if err != nil {
			return errors.Wrap(err, "couldn't address results row")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "couldn't write results row %d", k+1)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "couldn't save %s", path)
	}
	fmt.Printf("Results saved to: %s\n", path)
	return nil
}

func WriteResultsJSON(report Report, path string) error {
	jsonRep, err := json.MarshalIndent(report, "", "\t")
	if err != nil {
		return errors.Wrap(err, "couldn't encode results")
	}
	jsonRep = []byte(SanitizeJsonArrayLineBreaks(string(jsonRep)))
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "couldn't create %s", filepath.Dir(path))
	}
	return errors.Wrapf(ioutil.WriteFile(path, jsonRep, 0644), "couldn't write %s", path)
}

func ReadResultsJSON(path string) (*Report, error) {
	repStr, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't read results")
	}
	var rep Report
	if err = json.Unmarshal(repStr, &rep); err != nil {
		return nil, errors.Wrapf(err, "couldn't parse %s", path)
	}
	return &rep, nil
}
