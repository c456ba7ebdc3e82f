package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"locize-sync/core/loader"
	"locize-sync/core/logger"
	"locize-sync/core/metrics"
	"locize-sync/core/middleware/auth"
	"locize-sync/core/middleware/rayid"
	"locize-sync/core/reconcile"
	"locize-sync/feature/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "locize-sync/docs/swagger"
)

var serveRoot string

// @title locize-sync API
// @version 1.0
// @description Reports translation keys used in the source tree that have no translation in the store.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve missing-translation reports over HTTP",
	Long:  `Starts the HTTP server exposing language and missing-translation reports, metrics and Swagger docs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		m := metrics.New()
		engine, err := newEngine(cmd.Context(), cfg, logg, reconcile.WithMetrics(m))
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		mgr := loader.NewManager()
		svc := report.NewService(engine, reconcile.NewSnapshotCache(cfg.Server.CacheTTL), sourceRoot(serveRoot, cfg), m, logg)
		mgr.Register(report.NewFeature(svc))

		// RayID first so every log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

		if !cfg.Server.AuthEnabled() {
			logg.Warn("API key not set, serving without authentication")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			errCh <- app.Listen(cfg.Server.Address())
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-c:
		}

		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveRoot, "root", "", "Source root to scan (overrides find_keys.root)")
	RootCmd.AddCommand(serveCmd)
}
