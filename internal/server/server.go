// Package server assembles the MCP server: it registers the enabled tools,
// installs the request pipeline, and runs the selected transport.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/mcp-instana/mcp-instana/internal/config"
	"github.com/mcp-instana/mcp-instana/internal/middleware"
	"github.com/mcp-instana/mcp-instana/internal/registry"
)

const (
	serverName    = "Instana MCP Server"
	serverVersion = "0.1.0"

	instructions = "Tools for querying IBM Instana monitoring data: application, " +
		"service, endpoint, and website performance, infrastructure metrics, and events."

	shutdownTimeout = 10 * time.Second
)

// Server hosts the MCP server over the configured transport.
type Server struct {
	cfg *config.Config
	log *slog.Logger
	mcp *mcp.Server
}

// New builds the MCP server from the registry. Only enabled descriptors are
// registered with the transport; disabled tools stay unreachable. The
// pipeline stages wrap every inbound message, outermost first: logging, tag
// filter, rate limit, retry.
func New(cfg *config.Config, reg *registry.Registry, log *slog.Logger) *Server {
	s := mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: serverVersion},
		&mcp.ServerOptions{Instructions: instructions},
	)

	s.AddReceivingMiddleware(
		middleware.Logging(log),
		middleware.TagFilter(cfg.Categories, reg, log),
		middleware.RateLimit(middleware.DefaultRequestsPerSecond, middleware.DefaultBurst, log),
		middleware.Retry(middleware.DefaultRetryAttempts, log),
	)

	for _, d := range reg.List(nil) {
		s.AddTool(d.Tool(), d.Handler)
	}

	return &Server{
		cfg: cfg,
		log: log.With("component", "server"),
		mcp: s,
	}
}

// Run serves until ctx is cancelled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	switch s.cfg.Transport {
	case config.TransportHTTP:
		return s.runHTTP(ctx)
	default:
		s.log.Info("starting MCP server in stdio mode")
		return s.mcp.Run(ctx, &mcp.StdioTransport{})
	}
}

func (s *Server) runHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return s.mcp },
		nil,
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("starting MCP server in streamable-http mode", "port", s.cfg.Port)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
