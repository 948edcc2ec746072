package events

import "sync"

// Delivery is one notification observed by a Recorder.
type Delivery struct {
	Kind    Kind
	Sender  string
	Payload any
}

// Recorder is a Subscriber that stores what it receives. It can be killed to
// simulate its backing object being destroyed.
type Recorder struct {
	mu   sync.Mutex
	got  []Delivery
	dead bool
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) OnEvent(kind Kind, sender Sender, payload any) {
	d := Delivery{Kind: kind, Payload: payload}
	if sender != nil {
		d.Sender = sender.ID()
	}
	r.mu.Lock()
	r.got = append(r.got, d)
	r.mu.Unlock()
}

// Kill marks the recorder destroyed.
func (r *Recorder) Kill() {
	r.mu.Lock()
	r.dead = true
	r.mu.Unlock()
}

func (r *Recorder) Destroyed() bool {
	if r == nil {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dead
}

// Deliveries returns a copy of everything received so far.
func (r *Recorder) Deliveries() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Delivery, len(r.got))
	copy(out, r.got)
	return out
}
