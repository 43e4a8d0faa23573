package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/mdtoc/internal/api"
	"github.com/dgallion1/mdtoc/internal/config"
	"github.com/dgallion1/mdtoc/internal/pipeline"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the mdtoc HTTP service",
	Long: `Serves TOC rendering and injection over HTTP. Configured through the
environment: PORT, MDTOC_API_KEY, WORKER_COUNT, MAX_UPLOAD_BYTES,
TOC_BEGIN_MARKER, TOC_END_MARKER, TOC_INDENT, JOB_TTL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			log.Error("invalid configuration", "error", err)
			return err
		}

		jobs := pipeline.NewJobStore(cfg.JobTTL)
		runner := pipeline.NewRunner(afero.NewOsFs(), jobs, log, pipeline.Options{
			BeginMarker: cfg.BeginMarker,
			EndMarker:   cfg.EndMarker,
			Indent:      cfg.IndentWidth,
			Workers:     cfg.WorkerCount,
		})

		srv := api.NewServer(runner, log, cfg)

		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Periodic job store cleanup.
		cleanupCtx, cancelCleanup := context.WithCancel(cmd.Context())
		defer cancelCleanup()
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-cleanupCtx.Done():
					return
				case <-ticker.C:
					jobs.Cleanup()
				}
			}
		}()

		// Graceful shutdown.
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			log.Info("shutting down...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting mdtoc", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
