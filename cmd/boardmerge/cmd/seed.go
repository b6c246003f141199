package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Apply a lab-seed file to the board",
	Long: `Seed applies a lab-seed YAML file: categorized subjects with stable
external references, plus optional include and exclude terms. Entries whose
names already exist on the board are skipped; a seed is a starting point,
not a merge.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	report, err := engine.Seed(args[0])
	if err != nil {
		return err
	}
	if err := engine.Save(""); err != nil {
		return err
	}

	fmt.Printf("Seeded %d subjects and %d terms\n", report.SubjectsAdded, report.TermsAdded)
	if len(report.Skipped) > 0 {
		fmt.Printf("Skipped existing names: %s\n", strings.Join(report.Skipped, ", "))
	}
	return nil
}
