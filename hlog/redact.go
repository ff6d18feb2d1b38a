package hlog

import (
	"errors"
	"regexp"

	"github.com/go-logr/logr"
)

// A P:<password>; segment of a WiFi QR payload, preceded by the "WIFI:" prefix
// or by the end of a previous segment.
var wifiPassword = regexp.MustCompile(`([:;][Pp]:)((?:[^;\\]|\\.)+)(;)`)

// Redact masks WiFi passwords embedded in s.
func Redact(s string) string {
	return wifiPassword.ReplaceAllString(s, "${1}***${3}")
}

// Redacting wraps sink so that messages, string values and error texts never
// carry a WiFi password.
func Redacting(sink logr.LogSink) logr.LogSink {
	return &redactSink{sink: sink}
}

type redactSink struct {
	sink logr.LogSink
}

func (r *redactSink) Init(info logr.RuntimeInfo) {
	info.CallDepth++
	r.sink.Init(info)
}

func (r *redactSink) Enabled(level int) bool {
	return r.sink.Enabled(level)
}

func (r *redactSink) Info(level int, msg string, keysAndValues ...any) {
	r.sink.Info(level, Redact(msg), redactValues(keysAndValues)...)
}

func (r *redactSink) Error(err error, msg string, keysAndValues ...any) {
	r.sink.Error(redactError(err), Redact(msg), redactValues(keysAndValues)...)
}

func (r *redactSink) WithValues(keysAndValues ...any) logr.LogSink {
	return &redactSink{sink: r.sink.WithValues(redactValues(keysAndValues)...)}
}

func (r *redactSink) WithName(name string) logr.LogSink {
	return &redactSink{sink: r.sink.WithName(name)}
}

func (r *redactSink) WithCallDepth(depth int) logr.LogSink {
	if cd, ok := r.sink.(logr.CallDepthLogSink); ok {
		return &redactSink{sink: cd.WithCallDepth(depth)}
	}
	return r
}

func redactValues(keysAndValues []any) []any {
	out := make([]any, len(keysAndValues))
	for i, v := range keysAndValues {
		switch v := v.(type) {
		case string:
			out[i] = Redact(v)
		case error:
			out[i] = redactError(v)
		default:
			out[i] = v
		}
	}
	return out
}

func redactError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if redacted := Redact(msg); redacted != msg {
		return errors.New(redacted)
	}
	return err
}
