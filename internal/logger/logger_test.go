package logger

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"github.com/oggyb/duo-match/internal/config"
)

// captureOutput redirects stdout to a buffer during f()
func captureOutput(t *testing.T, f func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	_ = r.Close()

	return buf.String()
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(&Config{Level: "debug", Format: FormatText, Component: "test", Output: &buf})
	Info("hello duo", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "hello duo") {
		t.Errorf("expected message, got: %s", out)
	}
	if !strings.Contains(out, "component=test") {
		t.Errorf("expected component field, got: %s", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("expected structured field, got: %s", out)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(&Config{Level: "info", Format: FormatJSON, Component: "json_test", Output: &buf})
	Info("json log", "foo", "bar")

	out := buf.String()
	if !strings.Contains(out, `"msg":"json log"`) {
		t.Errorf("expected JSON message, got: %s", out)
	}
	if !strings.Contains(out, `"component":"json_test"`) {
		t.Errorf("expected component in JSON, got: %s", out)
	}
	if !strings.Contains(out, `"foo":"bar"`) {
		t.Errorf("expected structured field in JSON, got: %s", out)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	Init(&Config{Level: "error", Format: FormatText, Output: &buf})
	Info("should not appear")
	Error("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("info log should not appear, got: %s", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("error log should appear, got: %s", out)
	}
}

func TestLogger_WithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	Init(&Config{Level: "debug", Format: FormatText, Output: &buf})
	With("req_id", "123").Info("processing request")

	if !strings.Contains(buf.String(), "req_id=123") {
		t.Errorf("expected req_id field, got: %s", buf.String())
	}
}

// TestLogger_InitFromConfig goes through the app config, which always
// writes to stdout.
func TestLogger_InitFromConfig(t *testing.T) {
	out := captureOutput(t, func() {
		InitFromConfig(&config.Config{
			Log: config.LogConfig{
				Level:     "debug",
				Format:    "json",
				Component: "cfg_test",
				Source:    true,
			},
		})
		Debug("cfg-based log")
	})

	if !strings.Contains(out, `"msg":"cfg-based log"`) {
		t.Errorf("expected config-based JSON log, got: %s", out)
	}
	if !strings.Contains(out, `"component":"cfg_test"`) {
		t.Errorf("expected component from config, got: %s", out)
	}
}

func TestLogger_Context(t *testing.T) {
	var buf bytes.Buffer
	scoped := New(Config{Level: "info", Format: FormatText, Output: &buf}).With("method", "PutDecision")

	ctx := IntoContext(context.Background(), scoped)
	FromContext(ctx, nil).Info("scoped")
	if !strings.Contains(buf.String(), "method=PutDecision") {
		t.Errorf("expected scoped logger from context, got: %s", buf.String())
	}

	fallback := Discard()
	if FromContext(context.Background(), fallback) != fallback {
		t.Errorf("expected fallback logger when context is empty")
	}
}

func TestLogger_TraceIDs(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: FormatJSON, Output: &buf})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	l.With("couple", "c1").InfoContext(ctx, "decision recorded")
	out := buf.String()
	if !strings.Contains(out, `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`) {
		t.Errorf("expected trace_id, got: %s", out)
	}
	if !strings.Contains(out, `"span_id":"00f067aa0ba902b7"`) {
		t.Errorf("expected span_id, got: %s", out)
	}

	buf.Reset()
	l.Info("no span")
	if strings.Contains(buf.String(), "trace_id") {
		t.Errorf("unexpected trace_id without a span, got: %s", buf.String())
	}
}
