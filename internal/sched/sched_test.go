// internal/sched/sched_test.go
package sched

import (
	"errors"
	"testing"
	"time"

	"github.com/tamzrod/lux-bridge/internal/clock"
)

func task(name string, interval time.Duration, order *[]string, count *int) Task {
	return Task{
		Name:     name,
		Interval: interval,
		Run: func(nowMs uint64) error {
			if order != nil {
				*order = append(*order, name)
			}
			if count != nil {
				*count++
			}
			return nil
		},
	}
}

func TestNew_Validation(t *testing.T) {
	clk := clock.NewManual(0)

	if _, err := New(nil, time.Millisecond, task("a", time.Second, nil, nil)); err == nil {
		t.Fatalf("expected error for nil clock")
	}
	if _, err := New(clk, 0, task("a", time.Second, nil, nil)); err == nil {
		t.Fatalf("expected error for zero quantum")
	}
	if _, err := New(clk, time.Millisecond); err == nil {
		t.Fatalf("expected error for no tasks")
	}
	if _, err := New(clk, time.Millisecond, task("a", 0, nil, nil)); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestTick_NothingDueAtEpoch(t *testing.T) {
	clk := clock.NewManual(0)
	var runs int

	s, err := New(clk, time.Millisecond, task("sample", 500*time.Millisecond, nil, &runs))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	s.Tick()
	if runs != 0 {
		t.Fatalf("expected no runs at epoch, got %d", runs)
	}
}

func TestTick_ClockJumpFiresEachTaskOnce(t *testing.T) {
	clk := clock.NewManual(0)
	var sample, check, report int

	s, err := New(clk, time.Millisecond,
		task("sample", 500*time.Millisecond, nil, &sample),
		task("link-check", 10*time.Second, nil, &check),
		task("link-report", 30*time.Second, nil, &report),
	)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	// A stall of several interval lengths: one tick, one execution per
	// task, no catch-up backlog.
	clk.Set(31_000)
	s.Tick()

	if sample != 1 || check != 1 || report != 1 {
		t.Fatalf("expected 1/1/1 runs after jump, got %d/%d/%d", sample, check, report)
	}

	// Same instant again: timers were reset from now, nothing is due.
	s.Tick()
	if sample != 1 || check != 1 || report != 1 {
		t.Fatalf("expected no replay on second tick, got %d/%d/%d", sample, check, report)
	}
}

func TestTick_AtMostOncePerWindow(t *testing.T) {
	clk := clock.NewManual(0)
	var runs int

	s, err := New(clk, time.Millisecond, task("sample", 500*time.Millisecond, nil, &runs))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	// Ticks every 100 ms for 3 s: the 500 ms task fires on every fifth
	// tick and never twice inside one window.
	for i := 0; i < 30; i++ {
		clk.Advance(100)
		s.Tick()
	}

	if runs != 6 {
		t.Fatalf("expected 6 runs over 3000ms, got %d", runs)
	}
}

func TestTick_SkipDropAfterLateness(t *testing.T) {
	clk := clock.NewManual(0)
	var runs int

	s, err := New(clk, time.Millisecond, task("sample", 500*time.Millisecond, nil, &runs))
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	clk.Set(500)
	s.Tick() // fires, lastRun=500

	// 1250: 750 elapsed, fires once, lastRun=1250 (not 1000).
	clk.Set(1250)
	s.Tick()

	// 1600: only 350 since reset, not due.
	clk.Set(1600)
	s.Tick()

	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
}

func TestTick_FixedPriorityOrder(t *testing.T) {
	clk := clock.NewManual(0)
	var order []string

	s, err := New(clk, time.Millisecond,
		task("sample", 500*time.Millisecond, &order, nil),
		task("link-check", 500*time.Millisecond, &order, nil),
		task("link-report", 500*time.Millisecond, &order, nil),
	)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	clk.Set(500)
	s.Tick()

	want := []string{"sample", "link-check", "link-report"}
	if len(order) != len(want) {
		t.Fatalf("expected %d runs, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("run %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestTick_TaskErrorIsContained(t *testing.T) {
	clk := clock.NewManual(0)
	var after int

	failing := Task{
		Name:     "failing",
		Interval: 500 * time.Millisecond,
		Run: func(nowMs uint64) error {
			return errors.New("boom")
		},
	}

	s, err := New(clk, time.Millisecond,
		failing,
		task("after", 500*time.Millisecond, nil, &after),
	)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	clk.Set(500)
	s.Tick()
	clk.Set(1000)
	s.Tick()

	if after != 2 {
		t.Fatalf("expected later task to keep running, got %d runs", after)
	}
}
