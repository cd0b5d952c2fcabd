package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	srverrors "github.com/mcp-instana/mcp-instana/internal/errors"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("INSTANA_API_TOKEN", "tok")
	t.Setenv("INSTANA_BASE_URL", "https://tenant.instana.io")

	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Empty(t, cfg.Categories)
	assert.Equal(t, "tok", cfg.APIToken)
	assert.Equal(t, "https://tenant.instana.io", cfg.BaseURL)
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse([]string{"--transport", "streamable-http", "--tools", "infra, app,", "--port", "9090"})
	require.NoError(t, err)

	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"infra", "app"}, cfg.Categories)
}

func TestParsePortFromEnv(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := Parse([]string{"--transport", "streamable-http"})
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)

	t.Run("explicit flag wins over PORT", func(t *testing.T) {
		cfg, err := Parse([]string{"--transport", "streamable-http", "--port", "4000"})
		require.NoError(t, err)
		assert.Equal(t, 4000, cfg.Port)
	})
}

func TestParseInvalidPortEnv(t *testing.T) {
	t.Setenv("PORT", "eighty-eighty")

	_, err := Parse([]string{"--transport", "streamable-http"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid PORT value "eighty-eighty"`)

	var usage *srverrors.UsageError
	assert.False(t, errors.As(err, &usage), "a bad environment value is a startup error, not a usage error")
}

func TestParseHelp(t *testing.T) {
	t.Run("help alone", func(t *testing.T) {
		for _, spelling := range []string{"-h", "--h", "--help", "-help"} {
			_, err := Parse([]string{spelling})
			assert.ErrorIs(t, err, srverrors.ErrHelpRequested, spelling)
		}
	})

	t.Run("help combined with other arguments", func(t *testing.T) {
		_, err := Parse([]string{"--help", "--tools", "infra"})

		var usage *srverrors.UsageError
		require.ErrorAs(t, err, &usage)
		assert.Contains(t, usage.Message, "not allowed with other arguments")
	})
}

func TestParseInvalidTransport(t *testing.T) {
	_, err := Parse([]string{"--transport", "websocket"})

	var usage *srverrors.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Contains(t, usage.Message, "websocket")
}

func TestParseUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"--verbose"})

	var usage *srverrors.UsageError
	require.ErrorAs(t, err, &usage)
}

func TestValidateCredentials(t *testing.T) {
	t.Run("stdio requires both token and base url", func(t *testing.T) {
		cfg := &Config{Transport: TransportStdio, APIToken: "tok"}
		assert.ErrorIs(t, cfg.ValidateCredentials(), srverrors.ErrMissingCredentials)

		cfg = &Config{Transport: TransportStdio, BaseURL: "https://tenant.instana.io"}
		assert.ErrorIs(t, cfg.ValidateCredentials(), srverrors.ErrMissingCredentials)

		cfg = &Config{Transport: TransportStdio, APIToken: "tok", BaseURL: "https://tenant.instana.io"}
		assert.NoError(t, cfg.ValidateCredentials())
	})

	t.Run("http mode does not require credentials at startup", func(t *testing.T) {
		cfg := &Config{Transport: TransportHTTP}
		assert.NoError(t, cfg.ValidateCredentials())
	})
}

func TestUsage(t *testing.T) {
	var sb strings.Builder
	Usage(&sb)

	out := sb.String()
	assert.Contains(t, out, "--transport")
	assert.Contains(t, out, "--tools")
	assert.Contains(t, out, "--port")
}
