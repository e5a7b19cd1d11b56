// Package stress drives a taskwake run loop end to end: rounds of fan-out
// work woken through notifiers, then a teardown raced by late notifiers.
package stress

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/joeycumines/logiface"
	"golang.org/x/sync/errgroup"

	"github.com/llxisdsh/taskwake"
)

// Config describes one stress run.
type Config struct {
	// Rounds is the number of run loop entries.
	Rounds int
	// Workers is the number of notifier-holding workers per round.
	Workers int
	// LateNotifiers keep notifying while the handle closes.
	LateNotifiers int
	// Logger is optional.
	Logger *logiface.Logger[logiface.Event]
}

// Report summarises a completed run.
type Report struct {
	Rounds        int
	Wakes         int64
	Notifications int64
	Teardown      time.Duration
}

// ErrInvalidConfig is wrapped by the error Run returns for a Config it
// cannot execute.
var ErrInvalidConfig = errors.New("stress: invalid config")

func (c Config) validate() error {
	switch {
	case c.Rounds <= 0:
		return fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidConfig, c.Rounds)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case c.LateNotifiers < 0:
		return fmt.Errorf("%w: late notifiers must not be negative, got %d", ErrInvalidConfig, c.LateNotifiers)
	}
	return nil
}

// countingPlatform counts notifications that reach the platform.
type countingPlatform struct {
	taskwake.Platform
	n atomic.Int64
}

func (p *countingPlatform) Notify(id taskwake.TaskID, value uint32) {
	p.n.Add(1)
	p.Platform.Notify(id, value)
}

// Run executes cfg on a fresh task and reports what happened. It stops
// between rounds once ctx is done.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.validate(); err != nil {
		return Report{}, err
	}

	tasks := taskwake.NewTasks(taskwake.WithLogger(cfg.Logger))
	platform := &countingPlatform{Platform: tasks}

	var (
		report Report
		err    error
	)
	// Join on the goroutine rather than fn, so the task is unregistered
	// before Run returns.
	done := make(chan struct{})
	go func() {
		defer close(done)
		tasks.Run(func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("stress: run loop panicked: %v", r)
				}
			}()
			report, err = runLoop(ctx, cfg, platform, taskwake.NewCurrentTaskWait(tasks))
		})
	}()
	<-done

	report.Notifications = platform.n.Load()
	return report, err
}

func runLoop(ctx context.Context, cfg Config, platform *countingPlatform, wait taskwake.Wait) (Report, error) {
	var report Report
	handle := taskwake.NewTaskHandle(platform, taskwake.WithLogger(cfg.Logger))

	for round := range cfg.Rounds {
		if err := ctx.Err(); err != nil {
			handle.Close()
			return report, err
		}

		handle.Prerun()
		var (
			finished atomic.Int32
			g        errgroup.Group
		)
		for range cfg.Workers {
			n := handle.Notifier()
			g.Go(func() error {
				finished.Add(1)
				n.Notify()
				return nil
			})
		}
		for finished.Load() != int32(cfg.Workers) {
			wait.Wait()
			report.Wakes++
		}
		if err := g.Wait(); err != nil {
			handle.Close()
			return report, err
		}
		report.Rounds = round + 1

		cfg.Logger.Debug().
			Int("round", round).
			Int64("wakes", report.Wakes).
			Log("round complete")
	}

	var (
		stop atomic.Bool
		late errgroup.Group
	)
	for range cfg.LateNotifiers {
		n := handle.Notifier()
		late.Go(func() error {
			for !stop.Load() {
				n.Notify()
			}
			return nil
		})
	}

	start := time.Now()
	handle.Close()
	report.Teardown = time.Since(start)
	settled := platform.n.Load()

	stop.Store(true)
	if err := late.Wait(); err != nil {
		return report, err
	}
	if after := platform.n.Load() - settled; after != 0 {
		return report, fmt.Errorf("stress: %d notifications reached the task after teardown", after)
	}

	cfg.Logger.Info().
		Int("rounds", report.Rounds).
		Int64("wakes", report.Wakes).
		Dur("teardown", report.Teardown).
		Log("stress run complete")
	return report, nil
}
