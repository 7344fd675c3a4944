package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techcensus/internal/api"
	"techcensus/internal/engine"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the census file and serve the dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, cmd.ErrOrStderr())
		},
	}
}

func runServe(ctx context.Context, opts *options, logOut io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log := newLogger(cfg, logOut)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Handler starts with no data; /api answers 503 until the load finishes.
	h := api.NewHandler(nil)
	e := api.NewServer(cfg, h, log)

	g, gctx := errgroup.WithContext(ctx)

	// 2. Load in the background. A failed load stops the whole process;
	// main reports the error.
	g.Go(func() error {
		log.Info().Str("path", cfg.Data.Path).Msg("loading census data")
		t0 := time.Now()

		ds, err := engine.Load(gctx, cfg.Data.Path)
		if errors.Is(err, context.Canceled) && gctx.Err() != nil {
			log.Info().Msg("census load cancelled")
			return nil
		}
		if err != nil {
			return err
		}
		h.SetData(ds)

		log.Info().Int("rows", ds.Len()).Dur("took", time.Since(t0)).Msg("census data ready")
		return nil
	})

	// 3. Serve immediately.
	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.Addr).Msg("server listening (data loading in background)")
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 4. Shut down on signal or on the first failure.
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return e.Shutdown(sctx)
	})

	return g.Wait()
}
