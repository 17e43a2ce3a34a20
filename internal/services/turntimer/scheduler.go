package turntimer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/duelroom/internal/dependencies/clock"
	"github.com/mcoot/duelroom/internal/model"
)

// TickInterval is how often a running countdown reports the time left
const TickInterval = time.Second

// Handler receives countdown callbacks. Both run on the clock's goroutine
// with no scheduler lock held. gen identifies the countdown that produced
// the callback; see Scheduler.Current.
type Handler interface {
	OnTick(code model.RoomCode, gen uint64, remaining int)
	OnExpire(code model.RoomCode, gen uint64)
}

// Scheduler owns at most one countdown per room
type Scheduler struct {
	clock  clock.Clock
	logger *slog.Logger

	mu      sync.Mutex
	timers  map[model.RoomCode]*countdown
	nextGen uint64
}

type countdown struct {
	gen       uint64
	running   bool
	remaining int
	tick      clock.Timer
	expiry    clock.Timer
}

// New creates a new turn Scheduler
func New(clock clock.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		clock:  clock,
		logger: logger,
		timers: make(map[model.RoomCode]*countdown),
	}
}

// Start replaces any countdown for the room with a new one of duration d and
// returns its generation. h.OnTick fires every second with the whole seconds
// left; h.OnExpire fires once when d has elapsed.
func (s *Scheduler) Start(code model.RoomCode, d time.Duration, h Handler) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	cd := s.timers[code]
	if cd == nil {
		cd = &countdown{}
		s.timers[code] = cd
	}
	cd.stop()

	s.nextGen++
	gen := s.nextGen
	cd.gen = gen
	cd.running = true
	cd.remaining = int(d / TickInterval)
	cd.expiry = s.clock.AfterFunc(d, func() { s.expire(code, gen, h) })
	s.armTick(code, gen, h, cd)

	s.logger.Debug("turn timer started",
		slog.String("room_code", string(code)),
		slog.Duration("duration", d),
	)
	return gen
}

// Cancel stops the room's countdown. Callbacks already in flight see a stale
// generation.
func (s *Scheduler) Cancel(code model.RoomCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cd := s.timers[code]; cd != nil {
		cd.stop()
		s.nextGen++
		cd.gen = s.nextGen
	}
}

// Release cancels the room's countdown and forgets the room
func (s *Scheduler) Release(code model.RoomCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cd := s.timers[code]; cd != nil {
		cd.stop()
		delete(s.timers, code)
	}
}

// Current reports whether gen is still the room's latest countdown. Callers
// check it under their own room lock before acting on a callback.
func (s *Scheduler) Current(code model.RoomCode, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cd := s.timers[code]
	return cd != nil && cd.gen == gen
}

// Running reports whether the room has a countdown that has not yet expired
func (s *Scheduler) Running(code model.RoomCode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cd := s.timers[code]
	return cd != nil && cd.running
}

// Remaining returns the whole seconds left on the room's countdown
func (s *Scheduler) Remaining(code model.RoomCode) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cd := s.timers[code]
	if cd == nil || !cd.running {
		return 0, false
	}
	return cd.remaining, true
}

// armTick must be called with s.mu held
func (s *Scheduler) armTick(code model.RoomCode, gen uint64, h Handler, cd *countdown) {
	cd.tick = s.clock.AfterFunc(TickInterval, func() {
		s.mu.Lock()
		if cd.gen != gen || !cd.running {
			s.mu.Unlock()
			return
		}
		cd.remaining--
		remaining := cd.remaining
		if remaining > 0 {
			s.armTick(code, gen, h, cd)
		} else {
			cd.tick = nil
		}
		s.mu.Unlock()

		h.OnTick(code, gen, remaining)
	})
}

func (s *Scheduler) expire(code model.RoomCode, gen uint64, h Handler) {
	s.mu.Lock()
	cd := s.timers[code]
	if cd == nil || cd.gen != gen || !cd.running {
		s.mu.Unlock()
		return
	}
	cd.stop()
	s.mu.Unlock()

	s.logger.Debug("turn timer expired", slog.String("room_code", string(code)))
	h.OnExpire(code, gen)
}

// stop halts both callbacks; must be called with the scheduler lock held
func (cd *countdown) stop() {
	if cd.tick != nil {
		cd.tick.Stop()
		cd.tick = nil
	}
	if cd.expiry != nil {
		cd.expiry.Stop()
		cd.expiry = nil
	}
	cd.running = false
	cd.remaining = 0
}
