package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docrender/internal/logfields"
	"git.home.luguber.info/inful/docrender/internal/metrics"
	"git.home.luguber.info/inful/docrender/internal/site"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Overrides   Overrides `embed:""`
	MetricsAddr string    `name:"metrics-addr" help:"Serve Prometheus metrics on this address (overrides metrics.listen)"`
}

// Run renders once, then re-renders on change until interrupted. The
// configuration is reloaded for every rebuild; the set of watched paths is
// taken from the configuration at startup.
func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	w.Overrides.apply(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)

	addr := w.MetricsAddr
	if addr == "" {
		addr = cfg.Metrics.Listen
	}
	if addr != "" {
		srv := serveMetrics(addr, reg, g.Logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	rebuild := func(ctx context.Context) error {
		fresh, err := loadConfig(root)
		if err != nil {
			return err
		}
		w.Overrides.apply(fresh)
		_, err = site.NewBuilder(fresh, site.WithLogger(g.Logger), site.WithMetrics(reg, recorder)).Build(ctx)
		return err
	}

	if err := rebuild(ctx); err != nil {
		g.Logger.Warn("Initial build failed; waiting for changes", logfields.Error(err))
	}

	watcher, err := site.NewWatcher(cfg, root.Config, rebuild, g.Logger)
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

func serveMetrics(addr string, reg *prom.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	return srv
}
