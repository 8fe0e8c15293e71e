package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"sdx/internal/httpapi"
	"sdx/internal/manager"
	"sdx/internal/registry"
	"sdx/internal/sderr"
)

const (
	defaultHost     = "127.0.0.1"
	defaultPort     = 8080
	shutdownTimeout = 5 * time.Second
)

func newServeCmd(app *App) *cobra.Command {
	var host string
	var port int
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Start an OpenAI-compatible HTTP API server",
		Example: "  sdx serve --host 0.0.0.0 --port 8080",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := app.Config.Server
			if !cmd.Flags().Changed("host") && sc.Host != "" {
				host = sc.Host
			}
			if !cmd.Flags().Changed("port") && sc.Port != 0 {
				port = sc.Port
			}
			return serve(cmd.Context(), app, net.JoinHostPort(host, strconv.Itoa(port)))
		},
	}
	cmd.Flags().StringVar(&host, "host", defaultHost, "Host address to bind")
	cmd.Flags().IntVar(&port, "port", defaultPort, "Port to listen on")
	return cmd
}

func serve(parent context.Context, app *App, addr string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := app.Config
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Registry:   registry.FromConfig(cfg),
		Executable: cfg.ExecutablePath(),
		TempDir:    cfg.Server.TempDir,
		Logger:     &app.Log,
	})
	if err := manager.RegisterGateMetrics(prometheus.DefaultRegisterer, mgr.Gate()); err != nil {
		app.Log.Warn().Err(err).Msg("gate metrics not registered")
	}
	// not fatal; every generation re-checks
	warnNotReady(app, mgr)

	httpapi.SetLogger(app.Log)
	httpapi.SetDefaultLogLevel(httpLogLevel(cfg.LogLevel))
	httpapi.SetMaxBodyBytes(cfg.Server.MaxBodyBytes)
	httpapi.SetCORSOptions(true, cfg.Server.CORSOrigins, nil, nil)
	httpapi.SetBaseContext(ctx)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return sderr.IO("listen on "+addr, err)
	}
	srv := &http.Server{
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	fmt.Fprintf(app.Stderr, "listening on http://%s\n", ln.Addr())
	app.Log.Info().Str("addr", ln.Addr().String()).Int("models", len(cfg.Models)).Msg("sdx serving")

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return sderr.IO("serve", err)
	case <-ctx.Done():
	}

	app.Log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		app.Log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

// warnNotReady logs why generations would fail right now. Missing weight
// files only affect the models that reference them.
func warnNotReady(app *App, mgr *manager.Manager) {
	if ok, reason := mgr.Ready(); !ok {
		app.Log.Warn().Str("reason", reason).Str("sd_cli", mgr.Executable()).Msg("server not ready")
	}
	for _, ref := range mgr.SanityCheck().MissingPaths {
		app.Log.Warn().Str("model", ref.Model).Str("file", ref.Label).Str("path", ref.Path).Msg("weight file missing")
	}
}

// httpLogLevel maps the process log level to the per-request default.
func httpLogLevel(level string) string {
	switch level {
	case "debug", "trace":
		return "debug"
	case "off", "none", "disabled":
		return "off"
	case "error", "err", "warn", "warning":
		return "error"
	default:
		return "info"
	}
}
