package event

// Event is a domain event carried through the dispatcher.
type Event interface {
	Type() string
}

// Subscriber consumes events. Returning an error marks the delivery as
// failed for this subscriber only.
type Subscriber interface {
	Notify(e Event) error
}

// Bus is the dispatch side handed to services.
type Bus interface {
	Dispatch(e Event)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(e Event) error

func (f SubscriberFunc) Notify(e Event) error { return f(e) }
