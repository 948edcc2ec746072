// Package events implements the in-process notification registry: a mapping
// from event kind to an ordered list of subscribers, with synchronous
// fan-out and lazy removal of subscribers whose objects were destroyed.
package events

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Registry maps kinds to subscribers in insertion order. Duplicates are
// kept and notified once per registration. Empty lists are never stored.
type Registry struct {
	mu        sync.RWMutex
	listeners map[Kind][]Subscriber
	log       zerolog.Logger
}

// New returns an empty registry with logging disabled.
func New() *Registry {
	return &Registry{
		listeners: make(map[Kind][]Subscriber),
		log:       zerolog.Nop(),
	}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry. It lives for the whole process
// and is only ever purged, never replaced.
func Default() *Registry {
	defaultOnce.Do(func() { defaultReg = New() })
	return defaultReg
}

// SetLogger installs a structured logger.
func (r *Registry) SetLogger(l zerolog.Logger) {
	r.mu.Lock()
	r.log = l.With().Str("component", "events").Logger()
	r.mu.Unlock()
}

// Subscribe appends sub to the list for kind.
func (r *Registry) Subscribe(kind Kind, sub Subscriber) {
	r.mu.Lock()
	r.listeners[kind] = append(r.listeners[kind], sub)
	n := len(r.listeners[kind])
	r.mu.Unlock()
	subscribersGauge.WithLabelValues(kind.String()).Set(float64(n))
}

// Publish notifies every live subscriber of kind, in subscription order.
// Dead subscribers are skipped. The list is copied first, so handlers may
// subscribe or unsubscribe without disturbing the current fan-out; changes
// take effect from the next Publish.
func (r *Registry) Publish(kind Kind, sender Sender, payload any) {
	r.mu.RLock()
	subs := r.listeners[kind]
	snapshot := make([]Subscriber, len(subs))
	copy(snapshot, subs)
	log := r.log
	r.mu.RUnlock()

	label := kind.String()
	eventsPublished.WithLabelValues(label).Inc()
	if len(snapshot) == 0 {
		return
	}
	for _, s := range snapshot {
		if !alive(s) {
			staleSkipped.WithLabelValues(label).Inc()
			continue
		}
		r.deliver(log, s, kind, sender, payload)
	}
}

// deliver isolates the publisher from a panicking handler.
func (r *Registry) deliver(log zerolog.Logger, s Subscriber, kind Kind, sender Sender, payload any) {
	defer func() {
		if rec := recover(); rec != nil {
			handlerPanics.WithLabelValues(kind.String()).Inc()
			ev := log.Error().Str("kind", kind.String()).Interface("panic", rec)
			if sender != nil {
				ev = ev.Str("sender", sender.ID())
			}
			ev.Msg("subscriber panicked")
		}
	}()
	s.OnEvent(kind, sender, payload)
	eventsDelivered.WithLabelValues(kind.String()).Inc()
}

// UnsubscribeAll drops every subscriber of kind, live or not.
func (r *Registry) UnsubscribeAll(kind Kind) {
	r.mu.Lock()
	delete(r.listeners, kind)
	r.mu.Unlock()
	subscribersGauge.WithLabelValues(kind.String()).Set(0)
}

// PurgeDeadSubscribers removes dead subscribers from every list and drops
// lists that end up empty. Survivors keep their relative order. It returns
// how many subscriptions were removed; a second call with no intervening
// changes removes nothing.
func (r *Registry) PurgeDeadSubscribers() int {
	r.mu.Lock()
	removed := 0
	counts := make(map[Kind]int, len(r.listeners))
	for kind, subs := range r.listeners {
		kept := subs[:0]
		for _, s := range subs {
			if alive(s) {
				kept = append(kept, s)
			} else {
				removed++
			}
		}
		// clear the tail so dropped subscribers can be collected
		for i := len(kept); i < len(subs); i++ {
			subs[i] = nil
		}
		if len(kept) == 0 {
			delete(r.listeners, kind)
		} else {
			r.listeners[kind] = kept
		}
		counts[kind] = len(kept)
	}
	log := r.log
	r.mu.Unlock()

	for kind, n := range counts {
		subscribersGauge.WithLabelValues(kind.String()).Set(float64(n))
	}
	if removed > 0 {
		purgedTotal.Add(float64(removed))
	}
	log.Debug().Int("removed", removed).Int("kinds", len(counts)).Msg("purged dead subscribers")
	return removed
}

// Count returns the number of registrations for kind, dead ones included.
func (r *Registry) Count(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners[kind])
}

// Kinds returns the kinds that currently have at least one registration.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	out := make([]Kind, 0, len(r.listeners))
	for k := range r.listeners {
		out = append(out, k)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Snapshot returns registration counts per kind.
func (r *Registry) Snapshot() map[Kind]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[Kind]int, len(r.listeners))
	for k, subs := range r.listeners {
		out[k] = len(subs)
	}
	return out
}
