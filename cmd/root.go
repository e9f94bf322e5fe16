package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "tb",
	Short: "Thermal bridge steady-state simulator",
	Long: `tb - 2D thermal bridge finite-element simulator

Takes material-tagged rectangular regions of a building junction,
solves the steady-state heat conduction equation on a triangular
mesh and reports the temperature field, the linear thermal
transmittance (PSI) and the surface temperature factor (fRsi).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "conf/config.ini",
		"Path to the ini configuration file")
}
