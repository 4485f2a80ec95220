package xconsole

// Observer pattern

// Event names an entry stream in a Registry. Any string is a valid target;
// only the four level events are ever published by a Logger.
type Event string

const (
	EventDebug   Event = "debug"
	EventInfo    Event = "info"
	EventWarning Event = "warning"
	EventError   Event = "error"
)

// Subscriber is notified with every entry published for the events it is
// subscribed to. Implementations MUST be concurrency-safe: Publish runs all
// subscribers of an event concurrently.
//
// Subscription is idempotent by identity, so pointer receivers are the
// natural choice for stateful subscribers.
type Subscriber interface {
	OnLog(e Entry) error
}

// SubscriberFunc adapter. Func values are not comparable, so every Subscribe
// call with a SubscriberFunc creates a distinct subscription; keep the returned
// *Subscription to cancel it.
type SubscriberFunc func(Entry) error

func (f SubscriberFunc) OnLog(e Entry) error { return f(e) }
