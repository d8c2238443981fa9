package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/service-reports/pkg/server"
	"github.com/de-tools/service-reports/pkg/services/config"
	"github.com/de-tools/service-reports/pkg/store/duckdb"
	"github.com/de-tools/service-reports/pkg/store/duckdb/reports"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultDBPath = "service-reports.db"

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve the consolidated monthly reports",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(cfg.Level())

	dbPath := cfg.DB.Path
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath:  dbPath,
		Threads: cfg.Workers,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	reportStore, err := reports.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	logger.Info().Str("db", dbPath).Msg("report store opened")

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Dependencies: server.Dependencies{
			Reports: reportStore,
			Logger:  logger,
		},
	})

	return api.Start()
}
