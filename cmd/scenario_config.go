package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hazard-sim/hazard-sim/gmm"
)

// ScenarioConfig is the YAML schema for named rupture/site scenarios.
type ScenarioConfig struct {
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario is one rupture/site parameter set. Omitted depth-to-velocity
// horizons default to NaN (unknown basin depth).
type Scenario struct {
	Mw    float64  `yaml:"mw"`    // Moment magnitude
	RJB   float64  `yaml:"rjb"`   // Joyner-Boore distance (km)
	RRup  float64  `yaml:"rrup"`  // Rupture distance (km)
	RX    float64  `yaml:"rx"`    // Distance to extended strike (km)
	Dip   float64  `yaml:"dip"`   // Fault dip (degrees)
	Width float64  `yaml:"width"` // Down-dip rupture width (km)
	ZTop  float64  `yaml:"ztop"`  // Depth to rupture top (km)
	ZHyp  float64  `yaml:"zhyp"`  // Hypocentral depth (km)
	Rake  float64  `yaml:"rake"`  // Rake angle (degrees)
	Vs30  float64  `yaml:"vs30"`  // Site vs30 (m/s)
	VsInf bool     `yaml:"vsinf"` // vs30 inferred rather than measured
	Z1p0  *float64 `yaml:"z1p0"`  // Depth to 1.0 km/s horizon (km)
	Z2p5  *float64 `yaml:"z2p5"`  // Depth to 2.5 km/s horizon (km)
}

// GetScenarioInput loads a named scenario from a YAML file and converts it
// to a model input.
func GetScenarioInput(path, name string) (gmm.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gmm.Input{}, fmt.Errorf("read scenario file: %w", err)
	}

	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return gmm.Input{}, fmt.Errorf("parse scenario file: %w", err)
	}

	s, ok := cfg.Scenarios[name]
	if !ok {
		return gmm.Input{}, fmt.Errorf("scenario %q not found in %s", name, path)
	}
	logrus.Infof("Using scenario %v", name)

	z1p0, z2p5 := math.NaN(), math.NaN()
	if s.Z1p0 != nil {
		z1p0 = *s.Z1p0
	}
	if s.Z2p5 != nil {
		z2p5 = *s.Z2p5
	}

	b := gmm.NewInputBuilder()
	b.Mag(s.Mw).
		Distances(s.RJB, s.RRup, s.RX).
		Dip(s.Dip).
		Width(s.Width).
		ZTop(s.ZTop).
		ZHyp(s.ZHyp).
		Rake(s.Rake).
		Vs30(s.Vs30, s.VsInf).
		Z1p0(z1p0).
		Z2p5(z2p5)
	return b.Build()
}
