// Package diag wraps go.uber.org/zap to emit the "diagnostic line per
// rejected move" spec.md §6 requires. Rejected moves log at Debug level,
// which a silent logger (atomic level Info) drops; switching a driver to
// non-silent mode lowers the atomic level to Debug, mirroring theRebelliousNerd-codenerd/cmd/nerd's
// zap.NewProductionConfig()/AtomicLevel pattern.
package diag

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the diagnostic sink shared across the waterfall, closure
// detection, and the driver.
type Logger struct {
	zap   *zap.Logger
	level zap.AtomicLevel
}

// New builds a Logger. silent sets the level to Info, so the Debug-level
// move rejections are dropped; non-silent lowers the level to Debug so
// they reach standard error, per spec.md §6's "diagnostic line per
// rejected move when not in silent mode".
func New(silent bool) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if !silent {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{zap: z, level: cfg.Level}, nil
}

// Noop returns a Logger that discards everything, used by tests and by
// callers of the core that have no driver-level diagnostic stream.
func Noop() *Logger {
	return &Logger{zap: zap.NewNop(), level: zap.NewAtomicLevel()}
}

// SetSilent toggles the atomic level without rebuilding the logger.
func (l *Logger) SetSilent(silent bool) {
	if silent {
		l.level.SetLevel(zapcore.InfoLevel)
		return
	}
	l.level.SetLevel(zapcore.DebugLevel)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.zap.Sync() }

// RejectedMove logs a move that declined to fire: move name, the line
// indices it was tried against, and why.
func (l *Logger) RejectedMove(move string, lines []int, reason string) {
	l.zap.Debug("move rejected",
		zap.String("move", move),
		zap.Ints("lines", lines),
		zap.String("reason", reason),
	)
}

// AppliedMove logs a move that fired.
func (l *Logger) AppliedMove(move string, sources []int, produced []int) {
	l.zap.Info("move applied",
		zap.String("move", move),
		zap.Ints("sources", sources),
		zap.Ints("produced", produced),
	)
}

// Stuck logs that a waterfall pass completed with no move made.
func (l *Logger) Stuck(pass int) {
	l.zap.Info("waterfall stuck", zap.Int("pass", pass))
}

// Proved logs a successful closure.
func (l *Logger) Proved(passes int) {
	l.zap.Info("proof closed", zap.Int("passes", passes))
}

// BudgetExceeded logs a budget cutoff.
func (l *Logger) BudgetExceeded(kind string) {
	l.zap.Warn("budget exceeded", zap.String("kind", kind))
}

// Structural logs a programmer-error condition (out-of-bounds index,
// malformed argument) surfaced by proverr.StructuralError.
func (l *Logger) Structural(op string, err error) {
	l.zap.Error("structural error", zap.String("op", op), zap.Error(err))
}
