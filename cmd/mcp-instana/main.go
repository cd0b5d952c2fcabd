// Command mcp-instana starts the Instana MCP server.
//
// The server speaks MCP over stdio by default, or over streamable HTTP with
// --transport streamable-http. Exit codes: 0 clean shutdown or help, 1
// startup or server error, 2 invalid arguments.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcp-instana/mcp-instana/internal/config"
	srverrors "github.com/mcp-instana/mcp-instana/internal/errors"
	"github.com/mcp-instana/mcp-instana/internal/instana"
	"github.com/mcp-instana/mcp-instana/internal/registry"
	"github.com/mcp-instana/mcp-instana/internal/server"
	"github.com/mcp-instana/mcp-instana/internal/tools"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args)
	if err != nil {
		if errors.Is(err, srverrors.ErrHelpRequested) {
			config.Usage(stdout)
			return 0
		}
		var usage *srverrors.UsageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr, "error:", usage.Message)
			return 2
		}
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	// Logs go to stderr: in stdio mode stdout carries the MCP framing.
	log := slog.New(slog.NewTextHandler(stderr, nil))

	log.Info("enabled tool categories", "categories", categoriesOrAll(cfg))

	if err := cfg.ValidateCredentials(); err != nil {
		log.Error("startup failed", "error", err)
		return 1
	}

	client := instana.NewClient(cfg.BaseURL, cfg.APIToken, nil, log)

	reg := registry.New(log)
	for _, d := range tools.All(client, log) {
		if err := reg.Add(d); err != nil {
			log.Error("tool registration failed", "error", err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, reg, log).Run(ctx); !isCleanShutdown(err) {
		log.Error("server error", "error", err)
		return 1
	}

	log.Info("server stopped")
	return 0
}

// isCleanShutdown reports whether the transport stopped cleanly. The stdio
// transport surfaces a shutdown signal as context cancellation, which is a
// clean stop, not a failure.
func isCleanShutdown(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

func categoriesOrAll(cfg *config.Config) any {
	if len(cfg.Categories) == 0 {
		return "all"
	}
	return cfg.Categories
}
