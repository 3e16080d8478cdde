package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"aisolutions-backend/config"
	"aisolutions-backend/generator"
	"aisolutions-backend/routes"
	"aisolutions-backend/services"
	"aisolutions-backend/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// scheduleOff disables the background synthesizer.
const scheduleOff = "off"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the scheduled synthesizer",
	Long: `Run the dashboard API. Unless GENERATE_SCHEDULE is "off", a cron job appends
GENERATE_BATCH new records to the store on every tick.

Examples:
  aisolutions serve
  GENERATE_SCHEDULE="@every 5s" aisolutions serve --store data/sales.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg := config.Load()
	if csvPath != "" {
		cfg.CSVPath = csvPath
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	log := newLogger()
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if db != nil {
		log.Info("database mirror enabled", "driver", cfg.DBDriver)
	}

	st := store.Open(cfg.CSVPath)
	gen := generator.New(generator.DefaultConfig(), generator.WithSeed(cfg.GeneratorSeed))
	ingest := services.NewIngestService(gen, st, log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	ingest.Metrics = services.NewMetrics(reg)
	if db != nil {
		ingest.Mirror = services.GormMirror{DB: db}
	}
	if cfg.TwilioEnabled() {
		notifier := services.NewSMSNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, cfg.AlertPhoneNumber, log)
		if cfg.TwilioWhatsAppNumber != "" {
			notifier.UseWhatsApp(cfg.TwilioWhatsAppNumber)
		}
		notifier.Logs = db
		ingest.Notifier = notifier
		log.Info("failure alerts enabled", "to", cfg.AlertPhoneNumber)
	}

	if cfg.GenerateSchedule != scheduleOff {
		if err := ingest.Start(cfg.GenerateSchedule, cfg.GenerateBatch); err != nil {
			return err
		}
		defer ingest.Stop()
	}

	router := routes.SetupRouter(routes.Deps{
		Config:   cfg,
		Store:    st,
		Ingest:   ingest,
		DB:       db,
		Gatherer: reg,
		Log:      log,
	})
	printRoutes(router, log)

	return startServer(ctx, cfg, router, log)
}

// startServer runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func startServer(ctx context.Context, cfg config.Config, handler http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", "addr", srv.Addr, "store", cfg.CSVPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func printRoutes(r *gin.Engine, log *slog.Logger) {
	for _, route := range r.Routes() {
		log.Debug("route", "method", route.Method, "path", route.Path)
	}
}
