package patrol

import "sync"

// Slot holds at most one live satellite. Spawning while one is live keeps
// the incumbent and discards the newcomer.
type Slot struct {
	mu  sync.Mutex
	cur *Agent
}

var defaultSlot Slot

// DefaultSlot returns the process-wide slot.
func DefaultSlot() *Slot { return &defaultSlot }

// Spawn spawns into the process-wide slot.
func Spawn(cfg Config) (*Agent, bool, error) { return defaultSlot.Spawn(cfg) }

// Instance returns the live satellite of the process-wide slot, or nil.
func Instance() *Agent { return defaultSlot.Instance() }

// Spawn returns the authoritative agent and whether it was created by this
// call. A config error is only possible when the slot was empty.
func (s *Slot) Spawn(cfg Config) (*Agent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur != nil && !s.cur.destroyed {
		logger.Info().Str("live", s.cur.id).Str("discarded", cfg.ID).Msg("satellite already live, discarding new instance")
		return s.cur, false, nil
	}
	a, err := New(cfg)
	if err != nil {
		return nil, false, err
	}
	a.slot = s
	s.cur = a
	return a, true, nil
}

// Instance returns the live agent or nil.
func (s *Slot) Instance() *Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil || s.cur.destroyed {
		return nil
	}
	return s.cur
}

func (s *Slot) release(a *Agent) {
	s.mu.Lock()
	if s.cur == a {
		s.cur = nil
	}
	s.mu.Unlock()
}
