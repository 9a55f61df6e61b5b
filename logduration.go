package ember

import (
	"log/slog"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════════
// DURATION LOGGING
// ═══════════════════════════════════════════════════════════════════════════════
// A tiny scoped timer for measuring an operation:
//
//	timer := StartTimer("find top documents")
//	defer timer.Stop()
//
// Stop logs the elapsed wall time through slog alongside the label.
// ═══════════════════════════════════════════════════════════════════════════════

// Timer measures elapsed wall time from StartTimer to Stop.
type Timer struct {
	label string
	start time.Time
}

// StartTimer starts a timer with the given label.
func StartTimer(label string) *Timer {
	return &Timer{label: label, start: time.Now()}
}

// Stop logs the elapsed time since StartTimer.
func (t *Timer) Stop() {
	slog.Info("operation finished",
		slog.String("label", t.label),
		slog.Duration("elapsed", time.Since(t.start)))
}
