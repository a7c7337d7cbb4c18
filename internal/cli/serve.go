package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tipout/internal/metrics"
	"github.com/mmynk/tipout/internal/middleware"
	"github.com/mmynk/tipout/internal/service"
	"github.com/mmynk/tipout/pkg/api"
)

const shutdownTimeout = 5 * time.Second

func serveCommand(g *globals) *cli.Command {
	var addr string

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the tip-out form and its API on this device",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "Listen address (overrides server.address)",
				Destination: &addr,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if addr == "" {
				addr = a.cfg.Server.Address
			}
			slog.Info("Storage initialized", "database", a.cfg.Storage.DBPath, "ephemeral", g.ephemeral)

			handler, err := newServerHandler(a.session, a.metrics, serverOptions{
				staticPath:     a.cfg.Server.StaticPath,
				metrics:        a.cfg.Server.Metrics,
				allowedOrigins: allowedOrigins(addr, a.cfg.Server.AllowedOrigins),
			})
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://%s", addr))
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
				slog.Info("Shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}
}

type serverOptions struct {
	staticPath     string
	metrics        bool
	allowedOrigins []string
}

// newServerHandler wires the Connect API, metrics and static form files,
// wrapped with logging, CORS and h2c.
func newServerHandler(session *service.Session, m *metrics.Metrics, opts serverOptions) (http.Handler, error) {
	mux := http.NewServeMux()

	path, apiHandler := api.NewTipoutServiceHandler(
		service.NewTipoutService(session),
		connect.WithInterceptors(middleware.LoggingInterceptor()),
	)
	mux.Handle(path, apiHandler)

	if opts.metrics {
		m.Registry().MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		mux.Handle("/metrics", m.Handler())
	}

	staticDir, err := filepath.Abs(opts.staticPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve static path: %w", err)
	}
	if _, err := os.Stat(staticDir); err != nil {
		slog.Warn("Static files not found; only the API is served", "path", staticDir)
	} else {
		slog.Info("Serving static files", "path", staticDir)
	}
	mux.HandleFunc("/", staticHandler(staticDir))

	// Wrap with h2c for HTTP/2 without TLS (Connect clients may use it)
	return h2c.NewHandler(loggingMiddleware(corsMiddleware(opts.allowedOrigins, mux)), &http2.Server{}), nil
}

// staticHandler serves the form. Unknown paths get index.html.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/"+api.TipoutServiceName) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean("/"+urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// loggingMiddleware logs plain HTTP requests. RPCs are logged by the
// Connect interceptor instead.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		if strings.HasPrefix(r.URL.Path, "/"+api.TipoutServiceName) {
			return
		}
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// allowedOrigins is the server's own origin plus the configured extras.
// A loopback address also admits its localhost and 127.0.0.1 spellings.
func allowedOrigins(addr string, extra []string) []string {
	origins := append([]string(nil), extra...)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return origins
	}
	origins = append(origins, "http://"+net.JoinHostPort(host, port))

	ip := net.ParseIP(host)
	if host == "localhost" || (ip != nil && ip.IsLoopback()) {
		origins = append(origins,
			"http://localhost:"+port,
			"http://127.0.0.1:"+port,
			"http://[::1]:"+port,
		)
	}
	return origins
}

// corsMiddleware admits browser requests only from allowed origins.
// Requests without an Origin header (CLI clients, same-origin navigation)
// pass through; any other origin is refused before reaching the API.
func corsMiddleware(allowed []string, next http.Handler) http.Handler {
	allow := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		allow[strings.TrimSuffix(o, "/")] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Add("Vary", "Origin")

		if !allow[origin] {
			slog.Warn("Rejected cross-origin request", "origin", origin, "path", r.URL.Path)
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, X-Request-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
