package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tb/calculator"
	"tb/model"
)

var (
	runProject string
	runOutput  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation from a project file",
	Long: `Load a project file (the editor's {"version":"1.0","elements":[...]}
JSON format), run the mesh/solve/diagnostics pipeline once and print a
summary. With --output the full result record is written as JSON.

Examples:
  tb run --project junction.json
  tb run -p junction.json -o result.json -c conf/config.ini`,
	RunE: runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runProject, "project", "p", "", "Project JSON file [required]")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Write the full result record to this file")
	runCmd.MarkFlagRequired("project")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := calculator.LoadConfig(cfgPath)
	if err != nil {
		log.Warn("使用默认配置: ", err)
	}

	f, err := os.Open(runProject)
	if err != nil {
		return err
	}
	defer f.Close()
	regions, err := model.LoadProject(f)
	if err != nil {
		return err
	}

	result, err := calculator.Run(regions, cfg)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════")
	fmt.Println("     THERMAL BRIDGE SIMULATION RESULT")
	fmt.Println("═══════════════════════════════════════════════")
	fmt.Printf("  Nodes / Elements : %d / %d\n", len(result.Nodes), len(result.Elements))
	fmt.Printf("  Temperature      : %.3f ℃ .. %.3f ℃\n", result.MinTemperature, result.MaxTemperature)
	fmt.Printf("  PSI              : %.4f W/(m·K)\n", result.PsiValue)
	fmt.Printf("  fRsi             : %.4f\n", result.FRsiValue)
	fmt.Printf("  Converged        : %v (%d iterations)\n", result.Converged, result.Iterations)
	fmt.Println()
	if !result.Converged {
		log.Warn(calculator.ErrNotConverged, "，数值仅供参考；可增大 MaxIterations 或网格步长后重试")
	}

	if runOutput == "" {
		return nil
	}
	out, err := os.Create(runOutput)
	if err != nil {
		return err
	}
	defer out.Close()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
