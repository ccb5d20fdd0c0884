package cmd

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestGetScenarioInput_LoadsNamedScenario(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  charleston:
    mw: 7.3
    rjb: 25.0
    rrup: 25.6
    rx: 25.0
    dip: 60.0
    width: 18.0
    ztop: 2.0
    zhyp: 9.0
    rake: 90.0
    vs30: 560.0
    vsinf: true
    z2p5: 2.4
`)

	in, err := GetScenarioInput(path, "charleston")
	require.NoError(t, err)

	assert.Equal(t, 7.3, in.Mw)
	assert.Equal(t, 25.6, in.RRup)
	assert.Equal(t, 560.0, in.Vs30)
	assert.True(t, in.VsInf)
	assert.Equal(t, 2.4, in.Z2p5)

	// omitted depth horizons default to unknown
	assert.True(t, math.IsNaN(in.Z1p0))
}

func TestGetScenarioInput_UnknownScenario(t *testing.T) {
	path := writeScenarioFile(t, "scenarios:\n  a:\n    mw: 6.0\n")

	_, err := GetScenarioInput(path, "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario "b"`)
}

func TestGetScenarioInput_MissingFile(t *testing.T) {
	_, err := GetScenarioInput(filepath.Join(t.TempDir(), "nope.yaml"), "a")
	assert.Error(t, err)
}

func TestGetScenarioInput_MalformedYaml(t *testing.T) {
	path := writeScenarioFile(t, "scenarios: [not a map\n")
	_, err := GetScenarioInput(path, "a")
	assert.Error(t, err)
}
