package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arogya-ai/triage-server/internal/config"
	"github.com/arogya-ai/triage-server/internal/db"
	"github.com/arogya-ai/triage-server/internal/geo"
	"github.com/arogya-ai/triage-server/internal/llm"
	"github.com/arogya-ai/triage-server/internal/server"
	"github.com/arogya-ai/triage-server/internal/triage"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the triage HTTP server",
	Long:  `Starts the triage server with the chat API, conversation store, and facility search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validating config: %w", err)
		}

		// Open the conversation database.
		dbPath := filepath.Join(cfg.DataDir, "triage.db")
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		// Create the LLM provider.
		provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		// Create the geocoder-backed facility resolver.
		geocoder := geo.NewNominatimClient(
			cfg.Geocoder.BaseURL,
			cfg.Geocoder.UserAgent,
			time.Duration(cfg.Geocoder.TimeoutSeconds)*time.Second,
		)
		resolver := geo.NewResolver(geocoder)

		// Wire the triage engine with explicit dependencies.
		store := triage.NewStore(database)
		engine := triage.NewEngine(store, provider, cfg.Model, cfg.Temperature, resolver)

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})
		triage.RegisterRoutes(srv.Router(), engine, store)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "triage server v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", provider.Name(), cfg.Model)

		return srv.Start()
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serverCmd)
}
