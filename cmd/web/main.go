package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/sales-pulse/pkg/server"
	"github.com/de-tools/sales-pulse/pkg/services/analysis"
	"github.com/de-tools/sales-pulse/pkg/services/config"
	"github.com/de-tools/sales-pulse/pkg/services/resolver"
	"github.com/de-tools/sales-pulse/pkg/store/salesdb"
	"github.com/de-tools/sales-pulse/pkg/store/salesdb/sales"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Sales Pulse",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "sales-pulse.yaml",
		"Path to the configuration profile")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := salesdb.NewDB(salesdb.Settings{DbPath: cfg.DBPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	salesStore, err := sales.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create sales store: %w", err)
	}

	refTime := time.Now
	if cfg.ReferenceDate != "" {
		pinned, err := cfg.ReferenceTime(time.Time{})
		if err != nil {
			return err
		}
		refTime = func() time.Time { return pinned }
		logger.Info().Str("reference_date", cfg.ReferenceDate).Msg("reference date pinned")
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Resolver: resolver.New(),
			Engine:   analysis.NewEngine(salesStore),
			RefTime:  refTime,
		},
	})

	return webAPI.Start()
}
