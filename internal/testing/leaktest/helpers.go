// Package leaktest provides goroutine leak detection for tests that spin up
// background workers, pools, or hubs.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleInterval = 10 * time.Millisecond
	settleTimeout  = 500 * time.Millisecond
)

// GoroutineChecker snapshots the goroutine count at construction and reports
// growth beyond a tolerance at Check time.
type GoroutineChecker struct {
	t      testing.TB
	before int
}

// NewGoroutineChecker records the current goroutine count as the baseline.
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleInterval)

	return &GoroutineChecker{t: t, before: runtime.NumGoroutine()}
}

// Check fails the test when more than tolerance goroutines remain above the
// baseline. It polls for a short window first, so goroutines that are
// winding down are not reported as leaks.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after := settle(g.before + tolerance)
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d tolerance=%d",
			g.before, after, leaked, tolerance)
	}
}

// settle waits for the goroutine count to drop to target or for the settle
// window to elapse, returning the last observed count.
func settle(target int) int {
	deadline := time.Now().Add(settleTimeout)
	count := runtime.NumGoroutine()
	for count > target && time.Now().Before(deadline) {
		runtime.Gosched()
		runtime.GC()
		time.Sleep(settleInterval)
		count = runtime.NumGoroutine()
	}
	return count
}

// CheckNone runs fn and fails the test if it leaves any goroutines behind.
func CheckNone(t *testing.T, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}
