package cmd

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hazard-sim/hazard-sim/gmm"
)

var (
	// Model and intensity measure selection
	modelKey string // Model identifier (short key)
	imtName  string // Intensity measure type (PGA, PGV, SA0P2, ...)

	// Scenario selection; overrides the individual rupture/site flags
	scenarioFile string // YAML scenario file path
	scenarioName string // Named scenario within the file

	// Rupture parameters
	mw   float64 // Moment magnitude
	rJB  float64 // Joyner-Boore distance (km)
	rRup float64 // Rupture distance (km)
	rX   float64 // Distance to extended strike (km)
	dip  float64 // Fault dip (degrees)
	wid  float64 // Down-dip rupture width (km)
	zTop float64 // Depth to rupture top (km)
	zHyp float64 // Hypocentral depth (km)
	rake float64 // Rake angle (degrees)

	// Site parameters
	vs30  float64 // Site vs30 (m/s)
	vsInf bool    // vs30 inferred rather than measured
	z1p0  float64 // Depth to 1.0 km/s horizon (km); NaN if unknown
	z2p5  float64 // Depth to 2.5 km/s horizon (km); NaN if unknown
)

// buildInput assembles the rupture/site input from the scenario file when
// given, else from the individual flags.
func buildInput() (gmm.Input, error) {
	if scenarioFile != "" {
		return GetScenarioInput(scenarioFile, scenarioName)
	}
	b := gmm.NewInputBuilder()
	b.Mag(mw).
		Distances(rJB, rRup, rX).
		Dip(dip).
		Width(wid).
		ZTop(zTop).
		ZHyp(zHyp).
		Rake(rake).
		Vs30(vs30, vsInf).
		Z1p0(z1p0).
		Z2p5(z2p5)
	return b.Build()
}

func newRegistry() (*gmm.Registry, error) {
	catalog, err := gmm.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	return gmm.NewRegistry(catalog), nil
}

// calcCmd evaluates one model at one intensity measure for one scenario
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute mean and sigma for a model, intensity measure and scenario",
	Run: func(cmd *cobra.Command, args []string) {
		id, err := gmm.ParseGmm(modelKey)
		if err != nil {
			logrus.Fatalf("Invalid model: %v", err)
		}
		imt, err := gmm.ParseImt(imtName)
		if err != nil {
			logrus.Fatalf("Invalid intensity measure: %v", err)
		}
		in, err := buildInput()
		if err != nil {
			logrus.Fatalf("Invalid input: %v", err)
		}

		registry, err := newRegistry()
		if err != nil {
			logrus.Fatalf("Catalog load failed: %v", err)
		}
		model, err := registry.Instance(id, imt)
		if err != nil {
			logrus.Fatalf("Model construction failed: %v", err)
		}

		sgm := model.Calc(in)
		fmt.Printf("%s %s\n", id, imt)
		fmt.Printf("  mean  = %.8f ln g (median %.6g g)\n", sgm.Mean(), math.Exp(sgm.Mean()))
		fmt.Printf("  sigma = %.8f\n", sgm.Sigma())

		if msgm, ok := sgm.(gmm.MultiScalarGroundMotion); ok {
			fmt.Println("  branches:")
			for i, mu := range msgm.Means() {
				fmt.Printf("    mean[%d]  = %.8f (w=%.6f)\n", i, mu, msgm.MeanWeights()[i])
			}
			for i, sig := range msgm.Sigmas() {
				fmt.Printf("    sigma[%d] = %.8f (w=%.6f)\n", i, sig, msgm.SigmaWeights()[i])
			}
		}
	},
}

// inputFlags registers the shared rupture/site flags on a command
func inputFlags(cmd *cobra.Command) {
	def := gmm.DefaultInput()

	cmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "YAML scenario file")
	cmd.Flags().StringVar(&scenarioName, "scenario", "", "Named scenario within the scenario file")

	cmd.Flags().Float64Var(&mw, "mw", def.Mw, "Moment magnitude")
	cmd.Flags().Float64Var(&rJB, "rjb", def.RJB, "Joyner-Boore distance (km)")
	cmd.Flags().Float64Var(&rRup, "rrup", def.RRup, "Rupture distance (km)")
	cmd.Flags().Float64Var(&rX, "rx", def.RX, "Distance to extended strike (km)")
	cmd.Flags().Float64Var(&dip, "dip", def.Dip, "Fault dip (degrees)")
	cmd.Flags().Float64Var(&wid, "width", def.Width, "Down-dip rupture width (km)")
	cmd.Flags().Float64Var(&zTop, "ztop", def.ZTop, "Depth to rupture top (km)")
	cmd.Flags().Float64Var(&zHyp, "zhyp", def.ZHyp, "Hypocentral depth (km)")
	cmd.Flags().Float64Var(&rake, "rake", def.Rake, "Rake angle (degrees)")
	cmd.Flags().Float64Var(&vs30, "vs30", def.Vs30, "Site vs30 (m/s)")
	cmd.Flags().BoolVar(&vsInf, "vsinf", def.VsInf, "vs30 inferred rather than measured")
	cmd.Flags().Float64Var(&z1p0, "z1p0", math.NaN(), "Depth to 1.0 km/s horizon (km)")
	cmd.Flags().Float64Var(&z2p5, "z2p5", math.NaN(), "Depth to 2.5 km/s horizon (km)")
}

func init() {
	calcCmd.Flags().StringVar(&modelKey, "model", "", "Model identifier, e.g. campbell03, nga-east")
	calcCmd.Flags().StringVar(&imtName, "imt", "PGA", "Intensity measure type (PGA, PGV, SA0P2, ...)")
	inputFlags(calcCmd)

	rootCmd.AddCommand(calcCmd)
}
