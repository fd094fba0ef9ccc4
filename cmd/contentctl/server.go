package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gramsetu/contenthub/pkg/config"
	"github.com/gramsetu/contenthub/pkg/db"
	"github.com/gramsetu/contenthub/pkg/server"
	"github.com/gramsetu/contenthub/pkg/server/endpoints"
	gormstore "github.com/gramsetu/contenthub/pkg/server/store/gorm"
	"github.com/gramsetu/contenthub/pkg/token"
)

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return config.Get().Port
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the ContentHub application server",
	Long: `Run the ContentHub application server.

To run the server requires the environment variables DATABASE_URL and
CONTENTHUB_TOKEN_SECRET.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		secret, err := token.SecretFromEnv()
		if err != nil {
			log.Fatal().Msg("CONTENTHUB_TOKEN_SECRET environment variable is required")
		}

		if db.URL() == "" {
			log.Fatal().Msg("DATABASE_URL environment variable is required")
		}

		cfg := config.Get()
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}
		if bind, _ := cmd.Flags().GetString("bind-address"); bind != "" {
			cfg.BindAddress = bind
		}
		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Info().Msg("running database migrations")
			if err := runMigrations(); err != nil {
				log.Fatal().Err(err).Msg("migration failed")
			}
		}

		conn, err := db.Connect(db.Config{})
		if err != nil {
			log.Fatal().Err(err).Msg("unable to connect to database")
		}

		s := server.NewServer(
			gormstore.NewRecordsStore(conn),
			gormstore.NewUsersStore(conn),
			cfg,
			secret,
		)
		endpoints.RegisterAll(s)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			err := config.Watch(ctx, func(updated *config.Config) {
				s.SetConfig(updated)
				log.Info().Msg("configuration reloaded")
			})
			if err != nil && ctx.Err() == nil {
				log.Warn().Err(err).Msg("config watch stopped")
			}
		}()

		go func() {
			log.Info().Str("addr", cfg.Addr()).Str("environment", cfg.Environment).Msg("server listening")
			if err := s.Start(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("server failed")
			}
		}()

		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntP("port", "p", 0, "server listen port (overrides configuration)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (overrides configuration)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
