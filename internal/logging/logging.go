// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"fmt"

	"github.com/san-kum/fdtdisp/internal/sweep"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// maxFailureLogs bounds the per-sample warnings emitted for one sweep.
const maxFailureLogs = 10

// New returns a JSON logger, or a console logger when development is set,
// writing to stderr at the given level.
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}

	return config.Build()
}

func Nop() *zap.Logger {
	return zap.NewNop()
}

// Result logs the outcome of a sweep and a warning for each of its first
// failed samples.
func Result(l *zap.Logger, series string, res *sweep.Result) {
	l.Info("sweep finished",
		zap.String("series", series),
		zap.String("quantity", string(res.Quantity)),
		zap.Float64("courant", res.Params.Courant),
		zap.Int("samples", len(res.Samples)),
		zap.Int("failures", len(res.Failures)),
	)

	for i, f := range res.Failures {
		if i == maxFailureLogs {
			l.Warn("further sample failures suppressed",
				zap.String("series", series),
				zap.Int("suppressed", len(res.Failures)-maxFailureLogs),
			)
			return
		}
		l.Warn("sample failed",
			zap.String("series", series),
			zap.Int("index", f.Index),
			zap.Float64("n", f.N),
			zap.Error(f.Wrapped),
		)
	}
}
