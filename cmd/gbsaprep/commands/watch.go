package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/gbsaprep/internal/gbsa"
	"git.home.luguber.info/inful/gbsaprep/internal/logfields"
	"git.home.luguber.info/inful/gbsaprep/internal/metrics"
	"git.home.luguber.info/inful/gbsaprep/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Rescan      time.Duration `help:"Periodic full rescan interval" default:"5m"`
	Debounce    time.Duration `help:"Quiet period after filesystem events" default:"2s"`
	MetricsAddr string        `help:"Expose Prometheus metrics on this address (e.g. :9090)"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	rootDir := ResolveRoot(root.Root, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen := gbsa.New(cfg)

	var metricsSrv *http.Server
	if w.MetricsAddr != "" {
		reg := prom.NewRegistry()
		gen.WithRecorder(metrics.NewPrometheusRecorder(reg))

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.HTTPHandler(reg))
		metricsSrv = &http.Server{Addr: w.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("Metrics endpoint listening", slog.String("addr", w.MetricsAddr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}()
	}

	watcher, err := watch.New(rootDir, gen, watch.Options{
		RescanInterval: w.Rescan,
		Debounce:       w.Debounce,
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
