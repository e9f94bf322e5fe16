package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tb",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tb v%s\n", Version)
		fmt.Println("2D thermal bridge finite-element simulator")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
