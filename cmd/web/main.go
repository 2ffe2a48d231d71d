package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/observability"
	"github.com/de-tools/health-atlas/pkg/server"
	"github.com/de-tools/health-atlas/pkg/services/analysis"
	"github.com/de-tools/health-atlas/pkg/services/config"
	"github.com/de-tools/health-atlas/pkg/services/export"
	"github.com/de-tools/health-atlas/pkg/services/health"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	exportPath string
	cfgPath    string
	cutoff     string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Health Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&exportPath, "export", "e", "apple_health_export/export.xml",
		"Path to the export.xml file")
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the params file (defaults are built in)")
	rootCmd.Flags().StringVar(&cutoff, "cutoff", "",
		"Override the cutoff date (YYYY-MM-DD)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	params, err := config.LoadParams(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load params: %w", err)
	}
	if cutoff != "" {
		date, err := domain.ParseDate(cutoff)
		if err != nil {
			return fmt.Errorf("invalid --cutoff: %w", err)
		}
		params.CutoffDate = date
	}

	started := time.Now()
	set, stats, err := export.CollectFile(ctx, exportPath, params)
	if err != nil {
		return fmt.Errorf("failed to read export %q: %w", exportPath, err)
	}

	observability.RecordRecordsKept("heart_rate", stats.HeartRate)
	observability.RecordRecordsKept("low_heart_rate", stats.LowHeartRate)
	observability.RecordRecordsKept("sleep", stats.Sleep)
	observability.RecordRecordsKept("workouts", stats.Workouts)
	observability.RecordRecordsDropped("malformed", stats.Malformed)
	observability.RecordRecordsDropped("deduped", stats.Deduped)
	observability.RecordRecordsDropped("filtered", stats.Filtered)
	observability.RecordExportRun(time.Now(), time.Since(started))

	registry := analysis.DefaultRegistry()
	explorer := health.NewExplorer(set, stats, params, registry)

	logger.Info().Msgf("Export at `%s` successfully loaded, %d records kept.", exportPath, stats.Kept())
	logger.Info().Msgf("Registered analyses:")
	for _, name := range registry.ListAnalyses() {
		logger.Info().Msgf("Name: `%s`", name)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Explorer: explorer,
			Logger:   logger,
		},
	})

	return api.Start()
}
