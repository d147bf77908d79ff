// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package anim

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the scheduler lifecycle state.
type State int32

// Scheduler states. There is no paused state.
const (
	StateIdle State = iota
	StateRunning
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// DrawFunc renders one frame for a progress vector. It is only ever called
// from the animation loop goroutine, one frame at a time. It must not call
// Stop or Replay on the scheduler that invoked it.
type DrawFunc func(v Vector) error

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Ticker delivers frame ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Observer is notified about animation lifecycle events.
type Observer interface {
	Started(id uuid.UUID)
	Skipped()
	Frame(id uuid.UUID)
	Finished(id uuid.UUID, frames int, err error)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker { return timeTicker{time.NewTicker(d)} }

type nopObserver struct{}

func (nopObserver) Started(uuid.UUID)              {}
func (nopObserver) Skipped()                       {}
func (nopObserver) Frame(uuid.UUID)                {}
func (nopObserver) Finished(uuid.UUID, int, error) {}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock, typically with a manual clock in tests.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithTicker replaces the frame ticker factory.
func WithTicker(f func(time.Duration) Ticker) Option {
	return func(s *Scheduler) { s.newTicker = f }
}

// WithInterval sets the frame interval (default 60 fps).
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithObserver registers lifecycle callbacks.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		if o != nil {
			s.observer = o
		}
	}
}

// Scheduler drives one animation at a time through a DrawFunc.
//
// It moves Idle → Running on Start and back to Idle when the progress
// vector completes or the run is stopped. On completion it draws one last
// frame with an exactly complete vector so no easing residue survives.
type Scheduler struct {
	strategy  Strategy
	clock     Clock
	newTicker func(time.Duration) Ticker
	interval  time.Duration
	observer  Observer

	mu     sync.Mutex
	logger *slog.Logger
	state  State
	cancel context.CancelFunc
	done   chan struct{}
	id     uuid.UUID
	err    error
}

// NewScheduler creates an idle scheduler for strategy.
func NewScheduler(strategy Strategy, opts ...Option) *Scheduler {
	s := &Scheduler{
		strategy:  strategy,
		clock:     systemClock{},
		newTicker: newTimeTicker,
		interval:  DefaultInterval,
		observer:  nopObserver{},
		logger:    slog.New(discardHandler{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLogger sets the logger used for lifecycle messages. Pass nil to
// silence it.
func (s *Scheduler) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	s.mu.Lock()
	s.logger = l
	s.mu.Unlock()
}

// Strategy returns the progress strategy.
func (s *Scheduler) Strategy() Strategy { return s.strategy }

// State returns the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Running reports whether an animation is in flight.
func (s *Scheduler) Running() bool { return s.State() == StateRunning }

// Start begins an animation. If one is already running Start does
// nothing and returns false; the running animation continues untouched.
func (s *Scheduler) Start(ctx context.Context, draw DrawFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		s.logger.Debug("animation already running, start ignored", "run", s.id.String())
		s.observer.Skipped()
		return false
	}
	s.launch(ctx, draw)
	return true
}

// Replay stops any running animation, waits for its loop to exit, and
// starts a new one. Two loops never draw concurrently.
func (s *Scheduler) Replay(ctx context.Context, draw DrawFunc) {
	for {
		s.mu.Lock()
		if s.state != StateRunning {
			s.launch(ctx, draw)
			s.mu.Unlock()
			return
		}
		cancel, done := s.cancel, s.done
		s.mu.Unlock()

		cancel()
		<-done
	}
}

// Stop cancels the running animation and waits for its loop to exit.
// It does nothing when idle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
}

// Wait blocks until the current or most recent animation has finished and
// returns its error: nil on completion, context.Canceled when stopped, or
// the DrawFunc error that aborted it.
func (s *Scheduler) Wait() error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// launch starts the loop goroutine. s.mu must be held.
func (s *Scheduler) launch(ctx context.Context, draw DrawFunc) {
	runCtx, cancel := context.WithCancel(ctx)
	id := uuid.New()
	done := make(chan struct{})

	s.state = StateRunning
	s.cancel = cancel
	s.done = done
	s.id = id
	s.err = nil

	start := s.clock.Now()
	ticker := s.newTicker(s.interval)
	logger := s.logger.With("run", id.String())

	logger.Info("animation started", "total", s.strategy.Total())
	s.observer.Started(id)

	go s.run(runCtx, draw, id, start, ticker, done, logger)
}

func (s *Scheduler) run(ctx context.Context, draw DrawFunc, id uuid.UUID, start time.Time,
	ticker Ticker, done chan struct{}, logger *slog.Logger) {
	var (
		frames int
		err    error
	)
	defer func() {
		ticker.Stop()
		s.mu.Lock()
		if s.id == id {
			s.state = StateIdle
			s.cancel = nil
			s.err = err
		}
		s.mu.Unlock()

		if err != nil {
			logger.Info("animation stopped", "frames", frames, "err", err)
		} else {
			logger.Info("animation finished", "frames", frames)
		}
		s.observer.Finished(id, frames, err)
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		case <-ticker.C():
		}

		v := s.strategy.At(s.clock.Now().Sub(start))
		if v.Done() {
			// final static frame, exactly 1 everywhere
			if err = draw(Complete(len(v.Slice))); err == nil {
				frames++
				s.observer.Frame(id)
			}
			return
		}
		if err = draw(v); err != nil {
			return
		}
		frames++
		s.observer.Frame(id)
		logger.Debug("frame", "n", frames)
	}
}
