package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/codewit-us/codeval/config"
	"github.com/codewit-us/codeval/executor"
	"github.com/codewit-us/codeval/lang"
)

// Init builds the logger, the executor, and the listeners, then serves until
// a termination signal arrives.
func Init(cfg *config.Config) {
	logger := newLogger(cfg)
	defer logger.Sync()

	exec := executor.New(cfg.TempRoot, cfg.RunTimeout, toolchain(cfg), cfg.Disabled(), logger)
	r := NewRouter(cfg, logger, exec)

	api := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", api.Addr))
		return api.ListenAndServe()
	})

	var monitor *http.Server
	if cfg.MonitorAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		monitor = &http.Server{Addr: cfg.MonitorAddr, Handler: mux}
		g.Go(func() error {
			logger.Info("monitor listening", zap.String("addr", monitor.Addr))
			return monitor.ListenAndServe()
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if monitor != nil {
			_ = monitor.Shutdown(shutdownCtx)
		}
		return api.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("shut down")
}

func newLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.Release {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func toolchain(cfg *config.Config) lang.Toolchain {
	return lang.Toolchain{
		Cxx:            cfg.Cxx,
		CxxTestGen:     cfg.CxxtestGen,
		CxxTestInclude: cfg.CxxtestInclude,
		Javac:          cfg.Javac,
		Java:           cfg.Java,
		JUnitClasspath: cfg.JunitClasspath,
		Python:         cfg.Python,
		Pytest:         cfg.Pytest,
	}
}
