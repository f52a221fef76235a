// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-dashboard/internal/carousel"
	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/db"
	"inventory-dashboard/internal/handlers"
	"inventory-dashboard/internal/middleware"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Inventory admin dashboard",
	Long: `Serves the inventory admin dashboard: products overview, featured ` +
		`products carousel and user management.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := db.InitDB(cfg); err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer db.DB.Close()
		slog.Info("Migrations applied, exiting")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "path to the YAML config file")
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	config.InitLogger(cfg.AppEnv)
	return cfg, nil
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slog.Info("Starting inventory dashboard", "app_env", cfg.AppEnv)

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.AppEnv,
	}); err != nil {
		slog.Warn("Sentry initialization failed", "error", err)
	}
	defer sentry.Flush(2 * time.Second)

	if err := db.InitDB(cfg); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer db.DB.Close()

	seedFirstAdmin()

	items, err := featuredItems(ctx, cfg)
	if err != nil {
		return err
	}
	carousels, err := carousel.NewRegistry(items, carousel.RegistryConfig{
		Interval:    cfg.Carousel.Interval(),
		IdleTimeout: cfg.Carousel.IdleTimeout(),
	})
	if err != nil {
		return fmt.Errorf("create carousel registry: %w", err)
	}
	defer carousels.Close()
	carousels.StartSweeper(ctx, cfg.Carousel.SweepInterval())
	carousels.StartItemSync(ctx, cfg.Carousel.ItemSyncInterval(), db.LoadCarouselItems)

	store := mysqlstore.New(db.DB)
	defer store.StopCleanup()

	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = time.Duration(cfg.SessionLifetimeHours) * time.Hour
	sessionManager.Cookie.Name = "inventory_session"
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.IsProduction()
	sessionManager.Cookie.Path = "/"
	slog.Info("Session manager initialized", "store", "mysqlstore", "lifetime", sessionManager.Lifetime, "secure_cookie", sessionManager.Cookie.Secure)

	appHandlers, err := handlers.NewAppHandlers(cfg, sessionManager, carousels, db.GetAllProducts)
	if err != nil {
		return fmt.Errorf("initialize page handlers: %w", err)
	}

	loginLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	controlsLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	loginLimiter.StartCleanup(ctx, 10*time.Minute, 15*time.Minute)
	controlsLimiter.StartCleanup(ctx, 10*time.Minute, 15*time.Minute)

	router := newRouter(cfg, sessionManager, appHandlers, loginLimiter, controlsLimiter)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", fmt.Sprintf("http://localhost%s", addr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// featuredItems seeds an empty featured_items table from config and returns
// what the table holds, falling back to config when it is still empty.
func featuredItems(ctx context.Context, cfg *config.Config) ([]carousel.Item, error) {
	if err := db.SeedFeaturedItems(ctx, cfg.Carousel.Items); err != nil {
		return nil, fmt.Errorf("seed featured items: %w", err)
	}
	items, err := db.LoadCarouselItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load featured items: %w", err)
	}
	if len(items) == 0 {
		slog.Warn("featured_items is empty, using configured items")
		return cfg.Carousel.Items, nil
	}
	return items, nil
}
