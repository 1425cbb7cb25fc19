// Package playback owns the slideshow state machine: the fixed entry
// sequence, the current position, and the single timer that drives
// auto-advance. All transitions are safe to call from the UI thread and from
// the timer goroutine.
package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"leafslide/internal/scan"
)

const (
	// DefaultInterval is used when the configured interval is invalid.
	DefaultInterval = 8 * time.Second
	// MinInterval is the hard floor for the display interval.
	MinInterval = time.Second
)

// ErrInvalidInterval is returned by SetInterval for values below MinInterval.
// The prior interval is kept.
var ErrInvalidInterval = errors.New("interval must be at least one second")

// LoggerFunc defines a function signature for logging messages.
type LoggerFunc func(message string)

// Callbacks connect the scheduler to the presentation layer. Any field may be
// nil. Render is called for every display request and must return an error
// for unreadable or corrupt files so the scheduler can skip past them; it must
// tolerate being called again before a prior render completes (last call wins).
type Callbacks struct {
	Render          func(path, folder string, index, total int) error
	Progress        func(shown, total int)
	IntervalChanged func(seconds int)
	LoopChanged     func(looping bool)
	Stopped         func()
}

// Scheduler plays an ordered entry sequence in a timed loop.
//
// position ranges over [0, len(entries)]; position == len(entries) means the
// last entry has just been shown and the next display either wraps (looping)
// or stops the show. Exactly zero or one timer is live at any instant: every
// transition that re-arms cancels the pending timer first.
type Scheduler struct {
	mu       sync.Mutex
	entries  scan.Entries
	position int
	running  bool
	paused   bool
	looping  bool
	interval time.Duration
	timer    *time.Timer

	cb     Callbacks
	logger LoggerFunc
}

// NewScheduler creates a Scheduler over a non-empty entry sequence.
// An interval below MinInterval falls back to DefaultInterval.
func NewScheduler(entries scan.Entries, interval time.Duration, looping bool, cb Callbacks, logger LoggerFunc) *Scheduler {
	if interval < MinInterval {
		interval = DefaultInterval
	}
	return &Scheduler{
		entries:  entries,
		looping:  looping,
		interval: interval,
		cb:       cb,
		logger:   logger,
	}
}

func (s *Scheduler) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger(fmt.Sprintf(format, args...))
	}
}

// Start begins playback: displays entry 0 and arms the timer. Calling Start
// on a running or stopped-after-use scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running || len(s.entries) == 0 {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.paused = false
	s.position = 0
	s.mu.Unlock()
	s.advance(false)
}

// Advance displays the entry at the current position and moves past it.
// Manual navigation works even while paused.
func (s *Scheduler) Advance() { s.advance(false) }

// tick is the timer callback. Unlike a manual Advance it is suppressed while
// paused, so a timer that fired just as Pause ran cannot move the show.
func (s *Scheduler) tick() { s.advance(true) }

func (s *Scheduler) advance(auto bool) {
	failures := 0
	for {
		s.mu.Lock()
		if !s.running || (auto && s.paused) {
			s.mu.Unlock()
			return
		}
		if s.position >= len(s.entries) {
			if !s.looping {
				s.mu.Unlock()
				s.Stop()
				return
			}
			s.position = 0
		}
		e := s.entries[s.position]
		index := s.position
		total := len(s.entries)
		s.position++
		shown := s.position
		render := s.cb.Render
		s.mu.Unlock()

		if render != nil {
			if err := render(e.Path, e.Folder, index, total); err != nil {
				// A bad file must never stall playback: move straight on to
				// the next entry. A full pass of failures means nothing is
				// displayable, so end the show instead of spinning through
				// the wrap forever.
				s.logf("skipping unreadable image %s: %v", e.Path, err)
				failures++
				if failures >= total {
					s.logf("no displayable images left, stopping")
					s.Stop()
					return
				}
				continue
			}
		}

		s.mu.Lock()
		if s.running && !s.paused {
			s.armLocked()
		}
		progress := s.cb.Progress
		s.mu.Unlock()

		if progress != nil {
			progress(shown, total)
		}
		return
	}
}

// Retreat re-displays the entry immediately before the last one shown.
// position is one past the entry on screen, so stepping back two and then
// advancing lands on the previous image. No-op at the start of the show.
func (s *Scheduler) Retreat() {
	s.mu.Lock()
	if !s.running || s.position <= 0 {
		s.mu.Unlock()
		return
	}
	s.position -= 2
	if s.position < 0 {
		s.position = 0
	}
	s.mu.Unlock()
	s.advance(false)
}

// Pause cancels the pending timer and freezes the show on the current image.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.paused {
		return
	}
	s.paused = true
	s.cancelLocked()
}

// Resume re-arms the timer at the current interval without re-rendering.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || !s.paused {
		return
	}
	s.paused = false
	s.armLocked()
}

// TogglePause flips between paused and playing and reports the new state.
func (s *Scheduler) TogglePause() (paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return s.paused
	}
	if s.paused {
		s.paused = false
		s.armLocked()
	} else {
		s.paused = true
		s.cancelLocked()
	}
	return s.paused
}

// SetInterval updates the display interval. Values below MinInterval are
// rejected and the prior interval kept. While playing, the pending timer is
// cancelled and re-armed at the new interval; no immediate advance happens.
// A stopped scheduler ignores the call, so a stale control event after close
// cannot mutate state or fire callbacks.
func (s *Scheduler) SetInterval(d time.Duration) error {
	if d < MinInterval {
		return ErrInvalidInterval
	}
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.interval = d
	if s.running && !s.paused {
		s.armLocked()
	}
	changed := s.cb.IntervalChanged
	s.mu.Unlock()
	if changed != nil {
		changed(int(d / time.Second))
	}
	return nil
}

// ToggleLoop flips the loop flag. Position and timer are untouched; the flag
// only matters the next time the position reaches the end of the sequence.
// On a stopped scheduler the flag is left alone and no callback fires.
func (s *Scheduler) ToggleLoop() (looping bool) {
	s.mu.Lock()
	if !s.running {
		looping = s.looping
		s.mu.Unlock()
		return looping
	}
	s.looping = !s.looping
	looping = s.looping
	changed := s.cb.LoopChanged
	s.mu.Unlock()
	if changed != nil {
		changed(looping)
	}
	return looping
}

// Stop ends the show: cancels any live timer, releases the entry list and
// notifies the presentation layer to tear down. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.paused = false
	s.cancelLocked()
	s.entries = nil
	stopped := s.cb.Stopped
	s.mu.Unlock()
	if stopped != nil {
		stopped()
	}
}

// armLocked cancels any pending timer and arms a new one. Callers hold s.mu.
func (s *Scheduler) armLocked() {
	s.cancelLocked()
	s.timer = time.AfterFunc(s.interval, s.tick)
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// IsPaused returns true while the show is paused.
func (s *Scheduler) IsPaused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// IsRunning returns true between Start and Stop.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// IsLooping returns the current loop flag.
func (s *Scheduler) IsLooping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.looping
}

// Interval returns the current display interval.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Len returns the number of entries in the show.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
