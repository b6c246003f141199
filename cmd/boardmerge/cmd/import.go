package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/subjectlab/boardmerge/pkg/errors"
	"github.com/subjectlab/boardmerge/pkg/ingest"
	"github.com/subjectlab/boardmerge/pkg/reconcile"
)

var (
	resolutionsFile string
	outputFile      string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a CSV file into the board",
	Long: `Import runs a CSV file through the two-stage reconciliation pipeline.

Only .csv files up to 10 MB are accepted. When the import raises conflicts
they are printed as tables and the command exits non-zero without touching
the board; re-run with --resolutions pointing at a YAML file that settles
them:

  internal:
    Quantum: Hardware        # category name, _include, or _exclude
  board:
    Silicon:
      choice: use_new        # or keep_existing
      category: Wafers       # optional target override

A fully resolved import is applied atomically and saved back to the board
file (or to --output).`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// resolutionDoc is the YAML document supplied via --resolutions.
type resolutionDoc struct {
	Internal map[string]string          `yaml:"internal"`
	Board    map[string]boardResolution `yaml:"board"`
}

type boardResolution struct {
	Choice   string `yaml:"choice"`
	Category string `yaml:"category,omitempty"`
}

func init() {
	importCmd.Flags().StringVarP(&resolutionsFile, "resolutions", "r", "", "YAML file with conflict resolutions")
	importCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the merged board to this file instead of the board file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	rows, err := ingest.ReadFile(args[0])
	if err != nil {
		return err
	}

	doc, err := loadResolutions(resolutionsFile)
	if err != nil {
		return err
	}

	session := engine.NewImport()
	res, err := session.Start(rows)
	if err != nil {
		return err
	}

	if res.State == reconcile.StateInternalConflicts {
		if len(doc.Internal) == 0 {
			printInternalConflicts(res.Internal)
			return errors.New("import blocked on internal conflicts, supply --resolutions")
		}
		res, err = session.ResolveInternal(doc.Internal)
		if err != nil {
			return err
		}
		if res.State == reconcile.StateInternalConflicts {
			printInternalConflicts(res.Internal)
			return errors.New("resolutions left internal conflicts open")
		}
	}

	if res.State == reconcile.StateBoardConflicts {
		resolutions := boardResolutions(doc)
		if len(resolutions) == 0 {
			printBoardConflicts(res.Board)
			return errors.New("import blocked on board conflicts, supply --resolutions")
		}
		res, err = session.ResolveBoard(resolutions)
		if err != nil {
			return err
		}
	}

	if err := engine.Accept(res.Merged); err != nil {
		return err
	}
	if err := engine.Save(outputFile); err != nil {
		return err
	}

	fmt.Printf("Imported %s: board now has %d subjects and %d terms\n",
		args[0], len(res.Merged.Subjects()), len(res.Merged.Terms()))
	return nil
}

// loadResolutions reads the optional resolutions file.
func loadResolutions(path string) (*resolutionDoc, error) {
	doc := &resolutionDoc{}
	if path == "" {
		return doc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return doc, nil
}

// boardResolutions converts the YAML document into typed resolutions.
func boardResolutions(doc *resolutionDoc) map[string]reconcile.Resolution {
	out := make(map[string]reconcile.Resolution, len(doc.Board))
	for name, r := range doc.Board {
		out[name] = reconcile.Resolution{
			Choice:         reconcile.Choice(r.Choice),
			TargetCategory: r.Category,
		}
	}
	return out
}

func printInternalConflicts(conflicts []reconcile.InternalConflict) {
	fmt.Printf("The CSV contradicts itself in %d place(s):\n\n", len(conflicts))

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Kind", "Name", "Found In")
	for _, c := range conflicts {
		_ = table.Append(string(c.Kind), c.Name, strings.Join(c.Categories, ", "))
	}
	_ = table.Render()
}

func printBoardConflicts(conflicts []reconcile.BoardConflict) {
	fmt.Printf("The import collides with the board in %d place(s):\n\n", len(conflicts))

	table := tablewriter.NewTable(os.Stdout)
	table.Header("Name", "On Board", "Incoming", "Existing Source")
	for _, c := range conflicts {
		_ = table.Append(c.Name, c.ExistingCategory, c.NewCategory, string(c.ExistingSource))
	}
	_ = table.Render()
}
