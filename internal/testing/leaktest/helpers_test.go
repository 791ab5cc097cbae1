package leaktest

import (
	"testing"
	"time"
)

func TestGoroutineChecker_CleanRun(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() {
		close(done)
	}()
	<-done

	checker.Check(0)
}

// recordingTB captures Errorf calls instead of failing the enclosing test.
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...interface{}) {
	r.failed = true
}

func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		<-stop
	}()

	checker.Check(0)
	if !rec.failed {
		t.Error("expected a lingering goroutine to be reported")
	}
}

func TestGoroutineChecker_ToleranceAllowsKnownWorkers(t *testing.T) {
	checker := NewGoroutineChecker(t)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		<-stop
	}()

	checker.Check(1)
}

func TestGoroutineChecker_WaitsForWindDown(t *testing.T) {
	checker := NewGoroutineChecker(t)

	go func() {
		time.Sleep(50 * time.Millisecond)
	}()

	// The goroutine outlives the call but finishes inside the settle window.
	checker.Check(0)
}

func TestCheckNone(t *testing.T) {
	CheckNone(t, func() {
		done := make(chan struct{})
		go func() {
			close(done)
		}()
		<-done
	})
}
