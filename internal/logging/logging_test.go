package logging

import (
	"errors"
	"testing"

	"github.com/san-kum/fdtdisp/internal/dispersion"
	"github.com/san-kum/fdtdisp/internal/sweep"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		for _, dev := range []bool{false, true} {
			l, err := New(lvl, dev)
			if err != nil {
				t.Fatalf("New(%q, %v): %v", lvl, dev, err)
			}
			if l == nil {
				t.Fatalf("New(%q, %v) returned nil logger", lvl, dev)
			}
		}
	}

	l, _ := New("warn", false)
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("warn logger should not enable info")
	}
	if !l.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("warn logger should enable error")
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestResult_WritesFields(t *testing.T) {
	core, obs := observer.New(zapcore.DebugLevel)
	l := zap.New(core)

	res := &sweep.Result{
		Quantity: sweep.Error1D,
		Params:   sweep.Params{Courant: 0.5},
		Samples:  []sweep.Sample{{N: 4, Value: 1}},
		Failures: []*sweep.SampleError{
			{Index: 0, N: 1, Wrapped: errors.New("boom")},
		},
	}
	Result(l, "error", res)

	entries := obs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[0].Message != "sweep finished" {
		t.Errorf("unexpected first entry: %v %q", entries[0].Level, entries[0].Message)
	}
	ctx := entries[0].ContextMap()
	if ctx["samples"] != int64(1) || ctx["failures"] != int64(1) || ctx["quantity"] != "error1d" {
		t.Errorf("unexpected fields: %v", ctx)
	}

	warn := entries[1].ContextMap()
	if entries[1].Level != zapcore.WarnLevel || warn["n"] != 1.0 || warn["index"] != int64(0) {
		t.Errorf("unexpected failure entry: %v %v", entries[1].Level, warn)
	}
}

func TestResult_SuppressesFailureFlood(t *testing.T) {
	core, obs := observer.New(zapcore.WarnLevel)
	l := zap.New(core)

	res := &sweep.Result{Quantity: sweep.Error1D}
	for i := 0; i < 25; i++ {
		res.Failures = append(res.Failures, &sweep.SampleError{Index: i, N: 1, Wrapped: dispersion.ErrDomain})
	}
	Result(l, "error", res)

	if got := obs.FilterMessage("sample failed").Len(); got != maxFailureLogs {
		t.Errorf("expected %d failure logs, got %d", maxFailureLogs, got)
	}
	sup := obs.FilterMessage("further sample failures suppressed").All()
	if len(sup) != 1 || sup[0].ContextMap()["suppressed"] != int64(15) {
		t.Errorf("unexpected suppression entry: %v", sup)
	}
}
