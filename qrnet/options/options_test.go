package options

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elephantatech/QR-Network-Scanner/internal/config"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitGeneralError, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitNetworkError, ExitCode(Exit(ExitNetworkError, errors.New("join"))))
	assert.Equal(t, ExitNoQRCode, ExitCode(fmt.Errorf("wrapped: %w", Exit(ExitNoQRCode, errors.New("none")))))
	assert.Equal(t, ExitTimeout, ExitCode(Exit(ExitNetworkError, fmt.Errorf("join: %w", context.DeadlineExceeded))))
	assert.Equal(t, ExitUserCancel, ExitCode(Exit(ExitGeneralError, context.Canceled)))
	assert.NoError(t, Exit(ExitGeneralError, nil))

	inner := errors.New("inner")
	assert.ErrorIs(t, Exit(ExitGeneralError, inner), inner)
}

func TestFprintResult(t *testing.T) {
	v := struct {
		SSID   string `json:"ssid" yaml:"ssid"`
		Hidden bool   `json:"hidden" yaml:"hidden"`
	}{"Home", true}

	var buf bytes.Buffer
	require.NoError(t, FprintResult(&buf, v))
	assert.Equal(t, "ssid: Home\nhidden: true\n\n", buf.String())

	Flags.Json = true
	defer func() { Flags.Json = false }()
	buf.Reset()
	require.NoError(t, FprintResult(&buf, v))
	assert.Equal(t, "{\"ssid\":\"Home\",\"hidden\":true}\n", buf.String())
}

func TestCommandLineContext(t *testing.T) {
	Flags.Wait = 50 * time.Millisecond
	defer func() { Flags.Wait = COMMAND_DEFAULT_TIMEOUT }()

	ctx := CommandLineContext(context.Background(), "v1.2.3")
	assert.Equal(t, "v1.2.3", Version(ctx))

	select {
	case <-ctx.Done():
		assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("command context did not time out")
	}
	Cancel(ctx)
}

func TestCancel(t *testing.T) {
	ctx := CommandLineContext(context.Background(), "")
	require.NoError(t, ctx.Err())
	Cancel(ctx)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, "", Version(context.Background()))
}

func TestConfig(t *testing.T) {
	cfg := Config(context.Background())
	assert.Equal(t, config.DefaultInterface, cfg.Interface)

	want := &config.Config{Interface: "en5"}
	assert.Same(t, want, Config(WithConfig(context.Background(), want)))
}
