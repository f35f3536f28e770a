package plcp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// lines of an LP file must stay below 560 characters
const lpTermsPerLine = 8

// WriteLP writes f in CPLEX LP format.
func WriteLP(w io.Writer, f *Formulation) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\\Problem name: PLCP_%s\n\n", f.Name)

	fmt.Fprintln(bw, "Minimize")
	obj := f.Objective()
	var ind []int
	var val []float64
	for i := 0; i < f.NumFacilities(); i++ {
		ind = append(ind, f.OpenVar(i))
		val = append(val, obj[f.OpenVar(i)])
	}
	fmt.Fprintf(bw, " obj: %s\n", lpExpression(f, ind, val))

	fmt.Fprintln(bw, "Subject To")
	for _, row := range f.Rows() {
		if f.NumVars() == 0 {
			break
		}
		fmt.Fprintf(bw, " %s: %s %s %s\n", row.Name, lpExpression(f, row.Ind, row.Val), row.Sense, lpNumber(row.Rhs))
	}

	if f.NumVars() > 0 {
		fmt.Fprintln(bw, "Binaries")
		for k := 0; k < f.NumVars(); k++ {
			if k > 0 && k%lpTermsPerLine == 0 {
				fmt.Fprintln(bw)
			}
			fmt.Fprint(bw, " ", f.VarName(k))
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, "End")
	return errors.Wrap(bw.Flush(), "couldn't write LP")
}

// WriteLPFile writes the LP file, creating its directory.
func WriteLPFile(path string, f *Formulation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "couldn't create %s", filepath.Dir(path))
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "couldn't create %s", path)
	}
	if err = WriteLP(file, f); err != nil {
		file.Close()
		return err
	}
	return errors.Wrapf(file.Close(), "couldn't close %s", path)
}

func lpExpression(f *Formulation, ind []int, val []float64) string {
	var sb strings.Builder
	written := 0
	for k := range ind {
		if val[k] == 0 && len(ind) > 1 {
			continue
		}
		if written > 0 && written%lpTermsPerLine == 0 {
			sb.WriteString("\n  ")
		}
		v := val[k]
		switch {
		case written == 0 && v < 0:
			sb.WriteString("- ")
		case written > 0 && v < 0:
			sb.WriteString(" - ")
		case written > 0:
			sb.WriteString(" + ")
		}
		if math.Abs(v) != 1 {
			sb.WriteString(lpNumber(math.Abs(v)))
			sb.WriteString(" ")
		}
		sb.WriteString(f.VarName(ind[k]))
		written++
	}
	if written == 0 {
		if f.NumVars() == 0 {
			return "0"
		}
		return "0 " + f.VarName(0)
	}
	return sb.String()
}

func lpNumber(v float64) string {
	return formatNumber(v)
}
