package events

// Sender identifies whoever published an event.
type Sender interface {
	ID() string
}

// Subscriber receives notifications for the kinds it subscribed to.
// Handlers run synchronously on the publishing goroutine and should return
// promptly.
type Subscriber interface {
	OnEvent(kind Kind, sender Sender, payload any)
}

// Mortal is implemented by subscribers whose backing object can be destroyed
// without unsubscribing. Once Destroyed reports true the registry stops
// notifying the subscriber and drops it on the next purge.
type Mortal interface {
	Destroyed() bool
}

// SubscriberFunc adapts a function to Subscriber. It never dies.
type SubscriberFunc func(kind Kind, sender Sender, payload any)

func (f SubscriberFunc) OnEvent(kind Kind, sender Sender, payload any) { f(kind, sender, payload) }

// Publisher is the write side of the registry, as seen by event sources.
type Publisher interface {
	Publish(kind Kind, sender Sender, payload any)
}

// NamedSender is a Sender with a fixed ID, handy for hosts publishing
// lifecycle events on their own behalf.
type NamedSender string

func (n NamedSender) ID() string { return string(n) }

func alive(s Subscriber) bool {
	if s == nil {
		return false
	}
	if m, ok := s.(Mortal); ok {
		return !m.Destroyed()
	}
	return true
}
