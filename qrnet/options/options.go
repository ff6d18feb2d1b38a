package options

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/elephantatech/QR-Network-Scanner/internal/config"
)

const COMMAND_DEFAULT_TIMEOUT time.Duration = 0 // No timeout by default (wait indefinitely)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitNoQRCode     = 10
	ExitNetworkError = 20
	ExitTimeout      = 30
	ExitUserCancel   = 40
)

var Flags struct {
	Config    string
	Verbose   bool
	Debug     bool
	Quiet     bool
	Json      bool
	Wait      time.Duration // the value taken by --wait / -w
	Interface string        // the value taken by --interface / -i
}

// ExitError makes the process exit with Code once the error is printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exit wraps err with the given exit code. Context errors map to the
// timeout and cancel codes whatever code is asked for.
func Exit(code int, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		code = ExitTimeout
	case errors.Is(err, context.Canceled):
		code = ExitUserCancel
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitGeneralError
}

type contextKey uint

const (
	cancelKey contextKey = iota
	versionKey
	configKey
)

// CommandLineContext derives the context a command runs in: bounded by
// --wait when set, and cancelled on SIGINT or SIGTERM.
func CommandLineContext(ctx context.Context, version string) context.Context {
	var cancel context.CancelFunc

	processCtx, processCancel := context.WithCancel(ctx)

	if Flags.Wait > 0 {
		ctx, cancel = context.WithTimeout(processCtx, Flags.Wait)
	} else {
		ctx, cancel = context.WithCancel(processCtx)
	}
	ctx = context.WithValue(ctx, versionKey, version)
	ctx = context.WithValue(ctx, cancelKey, context.CancelFunc(func() {
		cancel()
		processCancel()
	}))

	go func() {
		log := logr.FromContextOrDiscard(ctx)
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(signals)
		select {
		case <-signals:
			log.Info("Received signal")
			cancel()
			processCancel()
		case <-processCtx.Done():
		}
	}()
	return ctx
}

// Cancel releases the command context set up by CommandLineContext.
func Cancel(ctx context.Context) {
	if cancel, ok := ctx.Value(cancelKey).(context.CancelFunc); ok {
		cancel()
	}
}

func Version(ctx context.Context) string {
	if v, ok := ctx.Value(versionKey).(string); ok {
		return v
	}
	return ""
}

// UnderDebugger reports whether the process was started by a debugger.
func UnderDebugger() bool {
	if os.Getenv("VSCODE_DEBUG_MODE") != "" || os.Getenv("DELVE_DEBUGGER") != "" {
		return true
	}
	return strings.Contains(os.Args[0], "__debug_bin")
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// Config returns the configuration loaded by the root command, or the
// defaults when none was loaded.
func Config(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		Interface:    config.DefaultInterface,
		NetworkSetup: config.DefaultNetworkSetup,
		QR:           config.QR{Size: config.DefaultQRSize},
	}
}

func PrintResult(out any) error {
	return FprintResult(os.Stdout, out)
}

func FprintResult(w io.Writer, out any) error {
	var s []byte
	var err error
	if Flags.Json {
		s, err = json.Marshal(out)
	} else {
		s, err = yaml.Marshal(out)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(s))
	return err
}
