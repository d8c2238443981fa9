package commands

import (
	"fmt"
	"path/filepath"

	"github.com/de-tools/service-reports/pkg/runtime/terminal/export"
	"github.com/de-tools/service-reports/pkg/services/financials"
	"github.com/spf13/cobra"
)

const financialsFile = "financials.json"

type FinancialsCmd struct {
	env    *Env
	input  string
	output string
}

func NewFinancialsCmd(env *Env) *cobra.Command {
	fc := &FinancialsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "consolidate-financials",
		Short: "Merge the expenses and income exports into one JSON file",
		RunE:  fc.run,
	}

	cmd.Flags().StringVarP(&fc.input, "input", "i", "", "Directory holding the *Expenses.csv and *Income.csv exports")
	cmd.Flags().StringVarP(&fc.output, "output", "o", "", "Output JSON file")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (fc *FinancialsCmd) run(cmd *cobra.Command, _ []string) error {
	out := orDefault(fc.output, filepath.Join(fc.env.Config.Paths.Output, financialsFile))

	result, err := financials.Consolidate(cmd.Context(), fc.input, out)
	if err != nil {
		return fmt.Errorf("failed to consolidate financials: %w", err)
	}

	return fc.env.Reporter.HandleSummary(export.Summary{
		Title:     fmt.Sprintf("Financials for %d years", len(result.Years)),
		Processed: int64(len(result.Expenses) + len(result.Income)),
		Output:    out,
	})
}
