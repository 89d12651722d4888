// internal/sched/sched.go
package sched

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tamzrod/lux-bridge/internal/clock"
)

// Task is one periodic duty. Run receives the tick's monotonic time in
// milliseconds. A returned error is the task's own failure, contained
// by the scheduler: logged, never fatal, never retried early.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(nowMs uint64) error
}

type entry struct {
	task       Task
	intervalMs uint64
	lastRunMs  uint64
}

// Scheduler is a cooperative dispatcher: each tick checks every task's
// due time in fixed declaration order and runs due bodies synchronously
// to completion. No preemption, no reordering under load.
//
// Timers follow a skip/drop policy: after a task runs, its timer
// resets from the tick's current time (lastRun = now), never by
// advancing a fixed interval. A task that comes due several windows
// late still fires exactly once. The due comparison is uint64 modular
// subtraction, so it stays correct across counter wraparound.
type Scheduler struct {
	clk     clock.Clock
	quantum time.Duration
	tasks   []*entry
}

func New(clk clock.Clock, quantum time.Duration, tasks ...Task) (*Scheduler, error) {
	if clk == nil {
		return nil, errors.New("sched: clock required")
	}
	if quantum <= 0 {
		return nil, errors.New("sched: quantum must be > 0")
	}
	if len(tasks) == 0 {
		return nil, errors.New("sched: at least one task required")
	}

	s := &Scheduler{clk: clk, quantum: quantum}
	for _, t := range tasks {
		if t.Interval <= 0 {
			return nil, errors.New("sched: task " + t.Name + ": interval must be > 0")
		}
		if t.Run == nil {
			return nil, errors.New("sched: task " + t.Name + ": body required")
		}
		s.tasks = append(s.tasks, &entry{
			task:       t,
			intervalMs: uint64(t.Interval / time.Millisecond),
		})
	}
	return s, nil
}

// Tick performs one dispatch pass.
func (s *Scheduler) Tick() {
	now := s.clk.NowMs()

	for _, e := range s.tasks {
		if now-e.lastRunMs < e.intervalMs {
			continue
		}
		if err := e.task.Run(now); err != nil {
			log.Printf("sched: task %s: %v", e.task.Name, err)
		}
		e.lastRunMs = now
	}
}

// Run ticks until the context is cancelled. The loop itself never
// fails; process termination is its only other exit.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.quantum)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}
