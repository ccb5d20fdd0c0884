package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hazard-sim/hazard-sim/gmm"
)

var (
	modelKeys []string // Model identifiers to evaluate on a shared period axis
)

// spectraCmd computes response spectra over the spectral periods the
// selected models all support
var spectraCmd = &cobra.Command{
	Use:   "spectra",
	Short: "Compute response spectra for a model set and scenario",
	Run: func(cmd *cobra.Command, args []string) {
		if len(modelKeys) == 0 {
			logrus.Fatal("No models provided")
		}
		ids := make([]gmm.Gmm, len(modelKeys))
		for i, key := range modelKeys {
			id, err := gmm.ParseGmm(key)
			if err != nil {
				logrus.Fatalf("Invalid model: %v", err)
			}
			ids[i] = id
		}
		in, err := buildInput()
		if err != nil {
			logrus.Fatalf("Invalid input: %v", err)
		}

		registry, err := newRegistry()
		if err != nil {
			logrus.Fatalf("Catalog load failed: %v", err)
		}
		spectra, err := gmm.CalcResponseSpectra(registry, ids, in)
		if err != nil {
			logrus.Fatalf("Spectra computation failed: %v", err)
		}

		for _, id := range ids {
			rs := spectra[id]
			fmt.Printf("%s\n", id)
			for i, imt := range rs.Imts {
				fmt.Printf("  T=%-6.3gs mean=%.8f sigma=%.8f\n",
					imt.Period(), rs.Means[i], rs.Sigmas[i])
			}
		}
	},
}

func init() {
	spectraCmd.Flags().StringSliceVar(&modelKeys, "models", nil,
		"Comma-separated model identifiers, e.g. campbell03,toro97-mw")
	inputFlags(spectraCmd)

	rootCmd.AddCommand(spectraCmd)
}
