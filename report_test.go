package plcp_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
)

func TestWriteSolutionTxt(t *testing.T) {
	dir := t.TempDir()
	path, err := plcp.WriteSolutionTxt(dir, "inst", 5.5, "GUROBI", []int{2, 5}, []int{0, 3})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "inst_R5.5_GUROBI.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3 6\n1 4\n", string(content))

	opened, covered, err := plcp.ReadSolutionTxt(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, opened)
	assert.Equal(t, []int{0, 3}, covered)
}

func TestWriteSolutionTxt_Empty(t *testing.T) {
	path, err := plcp.WriteSolutionTxt(t.TempDir(), "inst", 6, "CPLEX", []int{}, []int{})
	require.NoError(t, err)
	assert.Equal(t, "inst_R6.0_CPLEX.txt", filepath.Base(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\n\n", string(content))
}

func TestAverage(t *testing.T) {
	records := []plcp.Record{
		{Instance: "a", Solver: "GUROBI", R: 5.5, Time: 10, Gap: plcp.Float(0), UB: plcp.Float(4), LB: plcp.Float(4)},
		{Instance: "a", Solver: "CPLEX", R: 5.5, Time: 20, Gap: plcp.Float(2)},
		{Instance: "b", Solver: "CPLEX", R: 6.5, Time: 30},
	}
	avg := plcp.Average(records[:2])
	require.NotNil(t, avg.Time)
	assert.Equal(t, 15.0, *avg.Time)
	require.NotNil(t, avg.Gap)
	assert.Equal(t, 1.0, *avg.Gap)
	assert.Equal(t, 4.0, *avg.UB)

	failed := append([]plcp.Record{}, records[:2]...)
	failed = append(failed, plcp.Record{Instance: "a", Solver: "HIGHS", R: 9, Comment: "engine crashed", Failed: true})
	avg = plcp.Average(failed)
	assert.Equal(t, 15.0, *avg.Time)
	assert.Equal(t, 5.5, *avg.R)

	avg = plcp.Average(records[2:])
	assert.Nil(t, avg.Gap)
	assert.Nil(t, avg.UB)
	assert.Equal(t, 6.5, *avg.R)
}

func TestSaveResultsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.xlsx")
	records := []plcp.Record{
		{Instance: "i1", Solver: "GUROBI", R: 5.5, LB: plcp.Float(9), UB: plcp.Float(10), Gap: plcp.Float(0), Time: 10},
		{Instance: "i1", Solver: "CPLEX", R: 5.5, Gap: plcp.Float(2), Time: 20},
		{Instance: "i1", Solver: "HIGHS", R: 5.5, Comment: "engine crashed", Failed: true},
	}
	require.NoError(t, plcp.SaveResultsXLSX(records, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, plcp.ResultsHeader, rows[0])
	assert.Equal(t, []string{"i1", "GUROBI", "5.5", "9", "10", "0", "10"}, rows[1])
	// unset cells stay empty
	assert.Equal(t, "", rows[2][3])

	// a failed run has no time
	require.GreaterOrEqual(t, len(rows[3]), 3)
	assert.Equal(t, []string{"i1", "HIGHS", "5.5"}, rows[3][:3])
	if len(rows[3]) > 6 {
		assert.Equal(t, "", rows[3][6])
	}

	last := rows[4]
	assert.Equal(t, plcp.AVERAGE_LABEL, last[0])
	assert.Equal(t, "", last[1])
	gap, err := strconv.ParseFloat(last[5], 64)
	require.NoError(t, err)
	assert.Equal(t, 1.0, gap)
	tm, err := strconv.ParseFloat(last[6], 64)
	require.NoError(t, err)
	assert.Equal(t, 15.0, tm)
}

func TestResultsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	rep := plcp.Report{
		Config:  plcp.DefaultConfig(),
		Records: []plcp.Record{{Instance: "i1", Solver: "CPLEX", R: 6, UB: plcp.Float(3), Time: 1}},
	}
	require.NoError(t, plcp.WriteResultsJSON(rep, path))

	back, err := plcp.ReadResultsJSON(path)
	require.NoError(t, err)
	assert.Equal(t, rep.Config, back.Config)
	require.Len(t, back.Records, 1)
	assert.Nil(t, back.Records[0].LB)
	assert.Equal(t, 3.0, *back.Records[0].UB)
}
