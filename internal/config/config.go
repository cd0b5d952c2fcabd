// Package config builds the immutable runtime configuration for the Instana
// MCP server from command-line flags and the process environment.
//
// The configuration is constructed once at startup and passed by reference
// into the registry, pipeline, and server; nothing mutates it afterwards.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	srverrors "github.com/mcp-instana/mcp-instana/internal/errors"
)

// Transport selects how the server speaks MCP.
type Transport string

const (
	// TransportStdio serves MCP over standard input/output.
	TransportStdio Transport = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP Transport = "streamable-http"
)

// DefaultPort is used when neither PORT nor --port is given.
const DefaultPort = 8080

// Config holds the runtime configuration. Read-only after Parse.
type Config struct {
	// Transport is the MCP transport mode.
	Transport Transport

	// Port is the listen port for streamable-http mode.
	Port int

	// Categories restricts tools/list output to tools tagged with at least
	// one of these categories. Empty means all tools.
	Categories []string

	// APIToken authenticates against the Instana REST API.
	APIToken string

	// BaseURL is the Instana tenant base URL.
	BaseURL string
}

// helpTokens are the spellings accepted for help, matching the CLI contract:
// help combined with any other argument is an invalid invocation.
var helpTokens = map[string]bool{
	"-h":     true,
	"--h":    true,
	"--help": true,
	"-help":  true,
}

func newFlagSet(defaultPort int) *pflag.FlagSet {
	fs := pflag.NewFlagSet("mcp-instana", pflag.ContinueOnError)
	fs.String("transport", string(TransportStdio),
		"Set the transport mode: streamable-http, stdio. Defaults to stdio if not specified.")
	fs.String("tools", "",
		"Comma-separated list of tool categories to enable: infra,app,events,automation,website. If not provided, all tools are enabled.")
	fs.Int("port", defaultPort,
		"Port to listen on (default: 8080, can be overridden with PORT env var)")
	fs.SortFlags = false
	fs.SetOutput(io.Discard)
	return fs
}

// Usage writes the flag summary to w.
func Usage(w io.Writer) {
	fmt.Fprintln(w, "Instana MCP Server")
	fmt.Fprintln(w)
	fmt.Fprint(w, newFlagSet(DefaultPort).FlagUsages())
}

// Parse builds a Config from command-line arguments and the environment.
//
// It returns srverrors.ErrHelpRequested when help is the only argument, and a
// *srverrors.UsageError for invalid invocations (help combined with other
// arguments, unknown flags, or an unknown transport mode).
func Parse(args []string) (*Config, error) {
	var help, other bool
	for _, arg := range args {
		if helpTokens[arg] {
			help = true
		} else {
			other = true
		}
	}
	if help {
		if other {
			return nil, &srverrors.UsageError{
				Message: "argument -h/--h/--help/-help: not allowed with other arguments",
			}
		}
		return nil, srverrors.ErrHelpRequested
	}

	envPort, err := envInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}

	fs := newFlagSet(envPort)
	if err := fs.Parse(args); err != nil {
		return nil, &srverrors.UsageError{Message: err.Error()}
	}

	transport, _ := fs.GetString("transport")
	tools, _ := fs.GetString("tools")
	port, _ := fs.GetInt("port")

	mode := Transport(transport)
	if mode != TransportStdio && mode != TransportHTTP {
		return nil, &srverrors.UsageError{
			Message: fmt.Sprintf("invalid transport %q: expected stdio or streamable-http", transport),
		}
	}

	return &Config{
		Transport:  mode,
		Port:       port,
		Categories: splitCategories(tools),
		APIToken:   os.Getenv("INSTANA_API_TOKEN"),
		BaseURL:    os.Getenv("INSTANA_BASE_URL"),
	}, nil
}

// ValidateCredentials enforces the stdio-mode precondition: both the API
// token and base URL must be present before the transport starts. HTTP mode
// defers credential checks to the adapter layer.
func (c *Config) ValidateCredentials() error {
	if c.Transport != TransportStdio {
		return nil
	}
	if c.APIToken == "" || c.BaseURL == "" {
		return srverrors.ErrMissingCredentials
	}
	return nil
}

func splitCategories(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return i, nil
}
