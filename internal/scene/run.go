package scene

import (
	"context"
	"time"
)

// Run ticks the current scene every TickInterval until ctx is done. Each
// tick uses the fixed step regardless of scheduling jitter. Run returns
// ctx.Err() on cancellation.
func (m *Manager) Run(ctx context.Context) error {
	t := time.NewTicker(m.tick)
	defer t.Stop()
	zlog.Info().Dur("tick", m.tick).Msg("update loop started")
	for {
		select {
		case <-ctx.Done():
			zlog.Info().Msg("update loop stopped")
			return ctx.Err()
		case <-t.C:
			if _, err := m.Step(); err != nil {
				// a failed transition leaves no scene; keep waiting for a reload
				continue
			}
		}
	}
}

// RunTicks advances the current scene n fixed ticks without waiting. fn, when
// non-nil, is called after every tick with its index.
func (m *Manager) RunTicks(n int, fn func(i int)) error {
	for i := 0; i < n; i++ {
		if _, err := m.Step(); err != nil {
			return err
		}
		if fn != nil {
			fn(i)
		}
	}
	return nil
}
