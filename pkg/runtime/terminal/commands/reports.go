package commands

import (
	"github.com/de-tools/service-reports/pkg/runtime/terminal/export"
	"github.com/de-tools/service-reports/pkg/services/workflow"
	"github.com/spf13/cobra"
)

type pipelineFlags struct {
	input  string
	output string
	dbPath string
}

func (f *pipelineFlags) bind(cmd *cobra.Command, withDB bool) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Input directory")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output directory")
	if withDB {
		cmd.Flags().StringVar(&f.dbPath, "db", "", "DuckDB file to store results in")
	}
}

type ToTextCmd struct {
	env   *Env
	flags pipelineFlags
}

func NewToTextCmd(env *Env) *cobra.Command {
	tc := &ToTextCmd{env: env}
	cmd := &cobra.Command{
		Use:   "to-text",
		Short: "Extract the text of every PDF report",
		RunE:  tc.run,
	}
	tc.flags.bind(cmd, false)
	return cmd
}

func (tc *ToTextCmd) run(cmd *cobra.Command, _ []string) error {
	cfg := tc.env.Config
	in := orDefault(tc.flags.input, cfg.Paths.PDF)
	out := orDefault(tc.flags.output, cfg.Paths.Text)

	runner := workflow.NewRunner(tc.env.Extractor, nil, workflow.RunnerConfig{Workers: cfg.Workers})
	summary, err := runner.ToText(cmd.Context(), in, out)
	if err != nil {
		return err
	}

	return tc.env.Reporter.HandleSummary(export.Summary{
		Title:     "Extracted text",
		Processed: summary.Processed,
		Skipped:   summary.Skipped,
		Output:    out,
	})
}

type ParseReportsCmd struct {
	env   *Env
	flags pipelineFlags
}

func NewParseReportsCmd(env *Env) *cobra.Command {
	pc := &ParseReportsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "parse-reports",
		Short: "Parse every PDF report into JSON",
		RunE:  pc.run,
	}
	pc.flags.bind(cmd, true)
	return cmd
}

func (pc *ParseReportsCmd) run(cmd *cobra.Command, _ []string) error {
	cfg := pc.env.Config
	in := orDefault(pc.flags.input, cfg.Paths.PDF)
	out := orDefault(pc.flags.output, cfg.Paths.JSON)

	store, closeStore, err := openStore(orDefault(pc.flags.dbPath, cfg.DB.Path), cfg.Workers)
	if err != nil {
		return err
	}
	defer closeStore()

	runner := workflow.NewRunner(pc.env.Extractor, store, workflow.RunnerConfig{Workers: cfg.Workers})
	summary, err := runner.ParseReports(cmd.Context(), in, out)
	if err != nil {
		return err
	}

	return pc.env.Reporter.HandleSummary(export.Summary{
		Title:     "Parsed reports",
		Processed: summary.Processed,
		Skipped:   summary.Skipped,
		Output:    out,
	})
}

type ConsolidateReportsCmd struct {
	env   *Env
	flags pipelineFlags
}

func NewConsolidateReportsCmd(env *Env) *cobra.Command {
	cc := &ConsolidateReportsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "consolidate-reports",
		Short: "Merge parsed reports into one record per month",
		RunE:  cc.run,
	}
	cc.flags.bind(cmd, true)
	return cmd
}

func (cc *ConsolidateReportsCmd) run(cmd *cobra.Command, _ []string) error {
	cfg := cc.env.Config
	in := orDefault(cc.flags.input, cfg.Paths.JSON)
	out := orDefault(cc.flags.output, cfg.Paths.Output)

	store, closeStore, err := openStore(orDefault(cc.flags.dbPath, cfg.DB.Path), cfg.Workers)
	if err != nil {
		return err
	}
	defer closeStore()

	runner := workflow.NewRunner(cc.env.Extractor, store, workflow.RunnerConfig{Workers: cfg.Workers})
	months, err := runner.ConsolidateReports(cmd.Context(), in, out)
	if err != nil {
		return err
	}

	return cc.env.Reporter.HandleMonths(months)
}
