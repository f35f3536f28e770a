package plcp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FormatError reports a malformed instance file.
type FormatError struct {
	Path string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

type dataLine struct {
	num    int
	fields []string
}

// ReadInstance reads a .dat instance. The instance is named after the file
// without its extension.
func ReadInstance(path string) (*Instance, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open instance")
	}
	defer file.Close()

	base := filepath.Base(path)
	inst, err := parseInstance(file, path)
	if err != nil {
		return nil, err
	}
	inst.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return inst, nil
}

// ParseInstance parses an instance from r. name is used for error messages
// and as the instance name.
func ParseInstance(r io.Reader, name string) (*Instance, error) {
	inst, err := parseInstance(r, name)
	if err != nil {
		return nil, err
	}
	inst.Name = name
	return inst, nil
}

func parseInstance(r io.Reader, path string) (*Instance, error) {
	var lines []dataLine
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	num := 0
	for scanner.Scan() {
		num++
		t := strings.TrimSpace(scanner.Text())
		if t == "" || strings.HasPrefix(t, "//") || strings.HasPrefix(t, "#") {
			continue
		}
		lines = append(lines, dataLine{num: num, fields: strings.Fields(t)})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "couldn't read %s", path)
	}
	if len(lines) == 0 {
		return nil, &FormatError{Path: path, Msg: "empty or invalid file"}
	}

	inst := &Instance{}
	header := lines[0]
	if len(header.fields) < 2 {
		return nil, &FormatError{Path: path, Line: header.num, Msg: "first line must contain n_fac and n_cli"}
	}
	var err error
	if inst.HeaderFacilities, err = strconv.Atoi(header.fields[0]); err != nil {
		return nil, &FormatError{Path: path, Line: header.num, Msg: fmt.Sprintf("invalid n_fac %q", header.fields[0])}
	}
	if inst.HeaderClients, err = strconv.Atoi(header.fields[1]); err != nil {
		return nil, &FormatError{Path: path, Line: header.num, Msg: fmt.Sprintf("invalid n_cli %q", header.fields[1])}
	}

	for _, ln := range lines[1:] {
		tag := strings.ToUpper(ln.fields[0])
		if tag != "F" && tag != "C" {
			continue
		}
		if len(ln.fields) < 5 {
			return nil, &FormatError{Path: path, Line: ln.num, Msg: fmt.Sprintf("%s record needs 4 values, got %d", tag, len(ln.fields)-1)}
		}
		id, x, y, v, err := parseRecord(ln.fields[1:5])
		if err != nil {
			return nil, &FormatError{Path: path, Line: ln.num, Msg: err.Error()}
		}
		if tag == "F" {
			inst.Facilities = append(inst.Facilities, Facility{ID: id, X: x, Y: y, Cost: v})
		} else {
			inst.Clients = append(inst.Clients, Client{ID: id, X: x, Y: y, Demand: v})
		}
	}

	sort.SliceStable(inst.Facilities, func(a, b int) bool {
		fa, fb := inst.Facilities[a], inst.Facilities[b]
		return tupleLess(fa.ID, fb.ID, []float64{fa.X, fa.Y, fa.Cost}, []float64{fb.X, fb.Y, fb.Cost})
	})
	sort.SliceStable(inst.Clients, func(a, b int) bool {
		ca, cb := inst.Clients[a], inst.Clients[b]
		return tupleLess(ca.ID, cb.ID, []float64{ca.X, ca.Y, ca.Demand}, []float64{cb.X, cb.Y, cb.Demand})
	})

	inst.NumFacilities = len(inst.Facilities)
	inst.NumClients = len(inst.Clients)
	if inst.NumFacilities != inst.HeaderFacilities || inst.NumClients != inst.HeaderClients {
		Log(3, "%s: header says %d facilities and %d clients, parsed %d and %d", path,
			inst.HeaderFacilities, inst.HeaderClients, inst.NumFacilities, inst.NumClients)
	}
	return inst, nil
}

func parseRecord(f []string) (id int, x, y, v float64, err error) {
	if id, err = strconv.Atoi(f[0]); err != nil {
		return 0, 0, 0, 0, errors.Errorf("invalid id %q", f[0])
	}
	vals := make([]float64, 3)
	for k := 0; k < 3; k++ {
		vals[k], err = strconv.ParseFloat(f[k+1], 64)
		if err != nil {
			return 0, 0, 0, 0, errors.Errorf("invalid number %q", f[k+1])
		}
	}
	return id, vals[0], vals[1], vals[2], nil
}

func tupleLess(idA, idB int, a, b []float64) bool {
	if idA != idB {
		return idA < idB
	}
	for k := range a {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return false
}

// WriteInstance writes inst in the .dat format read by ReadInstance.
func WriteInstance(w io.Writer, inst *Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(inst.Facilities), len(inst.Clients))
	for _, f := range inst.Facilities {
		fmt.Fprintf(bw, "F %d %s %s %s\n", f.ID, formatNumber(f.X), formatNumber(f.Y), formatNumber(f.Cost))
	}
	for _, c := range inst.Clients {
		fmt.Fprintf(bw, "C %d %s %s %s\n", c.ID, formatNumber(c.X), formatNumber(c.Y), formatNumber(c.Demand))
	}
	return errors.Wrap(bw.Flush(), "couldn't write instance")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
