package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/impactlab/volunteer-matcher/internal/config"
	"github.com/impactlab/volunteer-matcher/internal/server"
)

var (
	servePort      int
	serveConfig    string
	serveSeedCount int
	serveSeedValue uint64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes matching, opportunity, and profile endpoints. Without DATABASE_URL the server runs against an in-memory store seeded with demo listings.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file")
	serveCmd.Flags().IntVar(&serveSeedCount, "seed-count", 20, "Generated demo listings for the in-memory store")
	serveCmd.Flags().Uint64Var(&serveSeedValue, "seed", 1, "Deterministic seed for demo data")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	fileCfg := &config.Config{}
	if serveConfig != "" {
		loaded, err := config.LoadConfig(serveConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		fileCfg = loaded
	}

	// CLI flags win over the config file when set explicitly
	merged := fileCfg.MergeWithDefaults(config.Config{
		Port:      servePort,
		SeedCount: serveSeedCount,
		SeedValue: serveSeedValue,
	})
	if cmd.Flags().Changed("port") {
		merged.Port = servePort
	}
	if cmd.Flags().Changed("seed-count") {
		merged.SeedCount = serveSeedCount
	}
	if cmd.Flags().Changed("seed") {
		merged.SeedValue = serveSeedValue
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		merged.DatabaseURL = databaseURL
	}

	srv, err := server.New(server.Config{
		Port:           merged.Port,
		DatabaseURL:    merged.DatabaseURL,
		AllowedOrigins: merged.AllowedOrigins,
		MinScore:       merged.MinScore,
		Limit:          merged.Limit,
		Weights:        merged.Weights,
		SeedCount:      merged.SeedCount,
		SeedValue:      merged.SeedValue,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
