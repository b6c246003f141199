package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current board",
	Long: `Show renders the board's categories, subjects, and filter terms as
tables.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	b := engine.Board()

	subjects := tablewriter.NewTable(os.Stdout)
	subjects.Header("Category", "Subject", "Source", "New Term")
	for _, cat := range b.Categories() {
		for _, sub := range cat.Subjects {
			flag := ""
			if sub.IsNewTerm {
				flag = "yes"
			}
			_ = subjects.Append(cat.Name, sub.Name, string(sub.Source), flag)
		}
	}
	if err := subjects.Render(); err != nil {
		return err
	}

	terms := b.Terms()
	if len(terms) == 0 {
		return nil
	}

	fmt.Println()
	table := tablewriter.NewTable(os.Stdout)
	table.Header("Term", "Direction", "Source")
	for _, term := range terms {
		_ = table.Append(term.Text, string(term.Direction), string(term.Source))
	}
	return table.Render()
}
