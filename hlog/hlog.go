package hlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
	"github.com/kardianos/service"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process logger, discarding everything until Init is called.
var Logger logr.Logger = logr.Discard()

// Options select the log level from the command line flags. At most one is
// expected to be set; Debug wins over Verbose which wins over Quiet.
type Options struct {
	Verbose bool
	Debug   bool
	Quiet   bool
}

// Level maps the flags to a zerolog level: warnings by default, V(1) logs
// with Debug.
func (o Options) Level() zerolog.Level {
	switch {
	case o.Debug:
		return zerolog.DebugLevel
	case o.Verbose:
		return zerolog.InfoLevel
	case o.Quiet:
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// LogToStderr forces logging to stderr even when not attached to a terminal.
func LogToStderr() bool {
	return os.Getenv("QRNET_LOG") == "stderr"
}

// Init sets Logger up. Every record goes through Redacting so that WiFi
// passwords never reach the output.
func Init(o Options) logr.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerologr.NameFieldName = "logger"
	zerologr.NameSeparator = "/"

	tty := IsTerminal()
	w := output(tty)

	zl := zerolog.New(w)
	if tty {
		zl = zl.Output(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !isColorTerminal(),
			TimeFormat: time.RFC3339,
		})
	}

	level := o.Level()
	zerolog.SetGlobalLevel(level)
	zl = zl.Level(level).With().Caller().Timestamp().Logger()

	Logger = logr.New(Redacting(zerologr.NewLogSink(&zl)))
	Logger.V(1).Info("Initialized", "level", level.String())
	return Logger
}

func output(tty bool) io.Writer {
	if tty || LogToStderr() || service.Interactive() {
		return os.Stderr
	}
	w, err := rotatingFile(getLogDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrnet: falling back to stderr logging: %v\n", err)
		return os.Stderr
	}
	return w
}

func rotatingFile(dir string) (io.Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, "qrnet.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}, nil
}

func isColorTerminal() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if _, exists := os.LookupEnv("CLICOLOR_FORCE"); exists {
		return true
	}
	term := os.Getenv("TERM")
	if term == "dumb" || os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if strings.HasSuffix(term, "color") || strings.HasPrefix(term, "xterm") || strings.HasPrefix(term, "screen") {
		return true
	}
	return IsTerminal()
}

// ErrorIfNotCanceled logs err unless it comes from the context being
// cancelled or timing out, which the command reports on its own.
func ErrorIfNotCanceled(log logr.Logger, err error, msg string, keysAndValues ...any) {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	log.Error(err, msg, keysAndValues...)
}
