package plcp_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plcp "github.com/Layonj3000/Problema-de-Localizacao-com-Cobertura-Parcial"
)

const toyLP = `\Problem name: PLCP_toy

Minimize
 obj: 10 y_0 + 20 y_1
Subject To
 cov_0: y_0 - z_0 >= 0
 cov_1: y_1 - z_1 >= 0
 demand: 5 z_0 + 5 z_1 >= 5
Binaries
 y_0 y_1 z_0 z_1
End
`

func TestWriteLP_Toy(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, plcp.WriteLP(&buf, toyFormulation(t)))
	assert.Equal(t, toyLP, buf.String())
}

// A client nobody reaches keeps only its own column.
func TestWriteLP_UncoveredClient(t *testing.T) {
	inst := toyInstance(t)
	f := plcp.NewFormulation(inst, plcp.BuildCoverageMatrix(inst, 0.5), 5)
	var buf bytes.Buffer
	require.NoError(t, plcp.WriteLP(&buf, f))
	assert.Contains(t, buf.String(), " cov_0: - z_0 >= 0\n")
}

func TestWriteLP_LongRowsWrap(t *testing.T) {
	inst := randomInstance(newRand(3), 20, 5)
	f := plcp.NewFormulation(inst, plcp.BuildCoverageMatrix(inst, 100), 1)
	var buf bytes.Buffer
	require.NoError(t, plcp.WriteLP(&buf, f))
	for _, line := range strings.Split(buf.String(), "\n") {
		assert.Less(t, len(line), 560)
	}
	assert.Contains(t, buf.String(), "Binaries\n y_0 y_1 y_2 y_3 y_4 y_5 y_6 y_7\n y_8")
}

func TestWriteLPFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "toy_cplex.lp")
	require.NoError(t, plcp.WriteLPFile(path, toyFormulation(t)))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, toyLP, string(content))
}
