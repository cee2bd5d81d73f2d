package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/api"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/cache"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/config"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/database"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/metrics"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg *config.Config, version string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compiler over HTTP",
		Long:  `Starts the HTTP API. Postgres history (DATABASE_URL) and the Redis compile cache (REDIS_URL) are optional.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg, version)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default $PORT or 8080)")
	return cmd
}

// connectBackends opens whichever backends are configured. Only a
// database that is configured but broken is fatal.
func connectBackends(ctx context.Context, cfg *config.Config) (api.Backends, error) {
	var b api.Backends

	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return b, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return b, fmt.Errorf("failed to run migrations: %w", err)
		}
		b.DB = db
	} else {
		log.Println("⚠️  DATABASE_URL not set, compile history disabled")
	}

	if cfg.RedisURL != "" {
		c, err := cache.Connect(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			sentry.CaptureException(err)
			log.Printf("⚠️  Compile cache disabled: %v", err)
		} else {
			b.Cache = c
		}
	} else {
		log.Println("⚠️  REDIS_URL not set, compile cache disabled")
	}

	cw, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics disabled: %v", err)
	}
	b.CloudWatch = cw
	return b, nil
}

func serve(ctx context.Context, cfg *config.Config, version string) error {
	b, err := connectBackends(ctx, cfg)
	if err != nil {
		sentry.CaptureException(err)
		return err
	}
	defer b.Cache.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.SetupRouter(b, cfg, version)

	log.Printf("🚀 Starting server on port %s (auth: %s)", cfg.Port, cfg.AuthMode)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
