package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xtding233/loot-economy/internal/api"
	"github.com/xtding233/loot-economy/internal/catalog"
	"github.com/xtding233/loot-economy/internal/reveal"
	"github.com/xtding233/loot-economy/internal/reward"
)

var refreshEvery time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and the gRPC health service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().DurationVar(&refreshEvery, "refresh-every", time.Minute, "How often to check for a new calendar day")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := openRuntime(ctx, reveal.RealScheduler())
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.seedPath != "" {
		w := catalog.NewSeedWatcher(rt.seedPath, logger.Named("seed"), func(defs []reward.Definition) {
			if err := rt.engine.SetMaster(defs); err != nil {
				logger.Warn("seed rejected", zap.Error(err))
			}
		})
		if err := w.Start(); err != nil {
			logger.Warn("seed watcher disabled", zap.String("path", rt.seedPath), zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	health, err := api.NewHealthServer(rt.cfg.GRPCAddr, logger.Named("grpc"))
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              rt.cfg.HTTPAddr,
		Handler:           api.NewServer(rt.engine, logger.Named("http")).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return health.Serve(ctx) })
	g.Go(func() error {
		logger.Info("http listening", zap.String("addr", rt.cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		t := time.NewTicker(refreshEvery)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				if _, err := rt.engine.RefreshCatalog(ctx); err != nil {
					logger.Error("daily refresh", zap.Error(err))
				}
			}
		}
	})
	return g.Wait()
}
