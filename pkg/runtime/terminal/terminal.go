package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/service-reports/pkg/runtime/terminal/commands"
	"github.com/de-tools/service-reports/pkg/runtime/terminal/export"
	"github.com/de-tools/service-reports/pkg/services/config"
	"github.com/de-tools/service-reports/pkg/services/extract"
	"github.com/de-tools/service-reports/pkg/services/s3sync"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env       *commands.Env
	logOutput io.Writer
	rootCmd   *cobra.Command

	configPath string
	logLevel   string
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// LogOutput receives the structured logs, stderr by default.
	LogOutput   io.Writer
	Extractor   extract.Extractor
	NewS3Client commands.S3ClientFactory
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Extractor == nil {
		opts.Extractor = extract.NewPDFExtractor()
	}
	if opts.NewS3Client == nil {
		opts.NewS3Client = func(ctx context.Context, profile, region string) (s3sync.Client, error) {
			return s3sync.NewClient(ctx, profile, region)
		}
	}

	cli := &CLI{
		env: &commands.Env{
			Extractor:   opts.Extractor,
			Reporter:    export.NewReporter(opts.Output),
			NewS3Client: opts.NewS3Client,
		},
		logOutput: opts.LogOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context, args ...string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "reports",
		Short:             "Monthly service report tool",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVar(&cli.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(commands.NewSyncCmd(cli.env))
	cmd.AddCommand(commands.NewToTextCmd(cli.env))
	cmd.AddCommand(commands.NewParseReportsCmd(cli.env))
	cmd.AddCommand(commands.NewConsolidateReportsCmd(cli.env))
	cmd.AddCommand(commands.NewFinancialsCmd(cli.env))

	return cmd
}

// setup loads the configuration and puts the logger on the command context.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return err
	}
	if cli.logLevel != "" {
		cfg.LogLevel = cli.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	cli.env.Config = cfg

	logger := zerolog.New(cli.logOutput).With().Timestamp().Logger().Level(cfg.Level())
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}
