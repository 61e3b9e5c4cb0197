package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/fitdash/internal/charts"
	"github.com/KaramelBytes/fitdash/internal/observability"
	"github.com/KaramelBytes/fitdash/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireConfig(); err != nil {
			return err
		}
		log := newLogger()
		if cmd.Flags().Changed("addr") && serveAddr != "" {
			cfg.HTTPAddress = serveAddr
		}

		frame, err := loadDataset()
		if err != nil {
			return err
		}
		observability.RecordDatasetRows(frame.Len())
		log.Info("loaded %d rows from %s", frame.Len(), cfg.DatasetPath)

		app, err := web.NewApp(web.Config{
			Frame:         frame,
			DatasetName:   filepath.Base(cfg.DatasetPath),
			Charts:        charts.Options{Width: cfg.ChartWidth, Height: cfg.ChartHeight},
			HistogramBins: cfg.HistogramBins,
			PreviewRows:   cfg.PreviewRows,
			Logger:        log,
		})
		if err != nil {
			return err
		}
		server := web.NewServer(web.ServerConfig{
			Address:      cfg.HTTPAddress,
			ReadTimeout:  cfg.ReadTimeout(),
			WriteTimeout: cfg.WriteTimeout(),
			IdleTimeout:  cfg.IdleTimeout(),
		}, app.Handler())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Info("fitdash listening on %s", cfg.HTTPAddress)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
			defer cancel()
			log.Info("shutting down")
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			return nil
		})
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides http_address)")
}
