package diag

import "testing"

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	l := Noop()
	l.RejectedMove("SC", []int{0}, "not a conjunction")
	l.AppliedMove("MP", []int{0, 1}, []int{2})
	l.Stuck(3)
	l.Proved(5)
	l.BudgetExceeded("move-count")
	if err := l.Sync(); err != nil {
		// Sync on stdout/stderr commonly errors on some platforms, so
		// its error is deliberately not checked here.
		_ = err
	}
}

func TestSetSilentTogglesLevel(t *testing.T) {
	l := Noop()
	l.SetSilent(true)
	l.SetSilent(false)
}
