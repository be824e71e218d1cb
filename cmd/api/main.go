package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"livestock-assessment/internal/adapters/camera/feed"
	"livestock-assessment/internal/adapters/camera/synthetic"
	mem "livestock-assessment/internal/adapters/storage/memory"
	pg "livestock-assessment/internal/adapters/storage/postgres"
	"livestock-assessment/internal/domain/assessment"
	"livestock-assessment/internal/domain/camera"
	"livestock-assessment/internal/platform/config"
	"livestock-assessment/internal/platform/logger"
	"livestock-assessment/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var portFlag string

var rootCmd = &cobra.Command{
	Use:   "livestock-assessment",
	Short: "API del wizard de evaluación de ganado por foto",
	Long: `Sirve el wizard de evaluación (identity, guidance, camera, review,
processing, complete), el catálogo del rebaño y los enlaces para compartir.

La configuración se lee del entorno (PORT, LOG_LEVEL, CAMERA_DEVICE, DB_DSN, ...).`,
	SilenceUsage: true,
	RunE:         serve,
}

func init() {
	rootCmd.Flags().StringVar(&portFlag, "port", "", "puerto HTTP (sobrescribe PORT)")
	rootCmd.AddCommand(recordsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if portFlag != "" {
		cfg.Port = portFlag
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	return cfg, log, nil
}

func serve(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		log.Info("herd catalog backed by postgres", nil)
	}

	assessments := assessment.NewService(mem.NewAssessmentRepo(), assessment.Options{
		Device: newCameraDevice(cfg),
		Constraints: camera.Constraints{
			Facing:      camera.FacingEnvironment,
			IdealWidth:  cfg.CameraIdealWidth,
			IdealHeight: cfg.CameraIdealHeight,
		},
		JPEGQuality:     cfg.CaptureJPEGQuality,
		ProcessingDelay: cfg.ProcessingDelay,
		AcquireTimeout:  cfg.CameraAcquireTimeout,
		SessionTTL:      cfg.SessionTTL,
		Logger:          log.With(map[string]any{"module": "assessment"}),
	})
	defer assessments.Close()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Logger:      log,
			Assessments: assessments,
			DB:          db,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "camera": cfg.CameraDevice})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return assessments.RunSweeper(gctx, cfg.SessionSweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

func newCameraDevice(cfg config.Config) camera.Device {
	if cfg.CameraDevice == config.CameraDeviceSynthetic {
		return synthetic.New()
	}
	return feed.New()
}
