package xconsole

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Registry maps event names to ordered subscriber sets. It is shared by every
// Logger derived from the same root, so subscribing once observes all of them.
// Safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	subs map[Event][]*Subscription
}

// Subscription is the handle returned by Registry.Subscribe.
type Subscription struct {
	r     *Registry
	event Event
	sub   Subscriber
}

// Event returns the event this subscription listens to.
func (s *Subscription) Event() Event { return s.event }

// Cancel removes the subscription from its registry. Idempotent.
func (s *Subscription) Cancel() {
	s.r.remove(s)
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by loggers that are
// not given one explicitly.
func DefaultRegistry() *Registry { return defaultRegistry }

func NewRegistry() *Registry {
	return &Registry{subs: make(map[Event][]*Subscription)}
}

// Subscribe registers s for event. Subscribing the same comparable subscriber
// to the same event twice is a no-op that returns the existing handle.
// Subscribers that cannot be compared, such as a SubscriberFunc or a struct
// wrapping one, are registered again on every call; cancel them through the
// returned handle.
func (r *Registry) Subscribe(event Event, s Subscriber) *Subscription {
	if s == nil {
		// Detached handle; Cancel is a no-op.
		return &Subscription{r: r, event: event}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.find(event, s); existing != nil {
		return existing
	}
	sub := &Subscription{r: r, event: event, sub: s}
	r.subs[event] = append(r.subs[event], sub)
	return sub
}

// Unsubscribe removes s from event and reports whether it was registered.
// Only comparable subscribers can be found this way; use Subscription.Cancel
// for SubscriberFunc registrations.
func (r *Registry) Unsubscribe(event Event, s Subscriber) bool {
	r.mu.Lock()
	existing := r.find(event, s)
	r.mu.Unlock()
	if existing == nil {
		return false
	}
	return r.remove(existing)
}

// Has reports whether s is subscribed to event.
func (r *Registry) Has(event Event, s Subscriber) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(event, s) != nil
}

// Len returns the number of subscriptions for event.
func (r *Registry) Len(event Event) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[event])
}

// Clear drops every subscription for every event.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = make(map[Event][]*Subscription)
}

// Publish delivers e to every subscriber of event. Subscribers are started in
// subscription order and run concurrently; Publish returns once all of them
// have finished. Failures, including panics, do not stop siblings and are
// returned together in subscription order.
func (r *Registry) Publish(event Event, e Entry) error {
	r.mu.RLock()
	subs := r.subs[event]
	if len(subs) == 0 {
		r.mu.RUnlock()
		return nil
	}
	// Copy so delivery runs without the lock held.
	snapshot := make([]*Subscription, len(subs))
	copy(snapshot, subs)
	r.mu.RUnlock()

	if len(snapshot) == 1 {
		return notify(snapshot[0], e)
	}

	errs := make([]error, len(snapshot))
	var wg sync.WaitGroup
	wg.Add(len(snapshot))
	for i, sub := range snapshot {
		go func() {
			defer wg.Done()
			errs[i] = notify(sub, e)
		}()
	}
	wg.Wait()

	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}

func notify(sub *Subscription, e Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrSubscriberPanic, sub.event, r)
		}
	}()
	if err = sub.sub.OnLog(e); err != nil {
		err = fmt.Errorf("subscriber for %q: %w", sub.event, err)
	}
	return err
}

// find must be called with r.mu held.
func (r *Registry) find(event Event, s Subscriber) *Subscription {
	if !isComparable(s) {
		return nil
	}
	for _, sub := range r.subs[event] {
		if isComparable(sub.sub) && sub.sub == s {
			return sub
		}
	}
	return nil
}

func (r *Registry) remove(target *Subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.subs[target.event]
	for i, sub := range subs {
		if sub != target {
			continue
		}
		// New slice so in-flight Publish snapshots stay valid.
		next := make([]*Subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(r.subs, target.event)
		} else {
			r.subs[target.event] = next
		}
		return true
	}
	return false
}

// isComparable reports whether == on s is safe. The dynamic value is checked,
// so a struct whose interface field holds a func, map or slice is not
// comparable even though its type is.
func isComparable(s Subscriber) bool {
	if s == nil {
		return false
	}
	return reflect.ValueOf(s).Comparable()
}

// SubscribeLevels registers s for the events of levels, or of every level
// when none are given.
func (r *Registry) SubscribeLevels(s Subscriber, levels ...Level) []*Subscription {
	if len(levels) == 0 {
		levels = Levels()
	}
	subs := make([]*Subscription, 0, len(levels))
	for _, lvl := range levels {
		subs = append(subs, r.Subscribe(lvl.Event(), s))
	}
	return subs
}
