// Package event carries game notifications from the simulation to its frontends.
package event

// Type identifies what happened.
type Type string

// Event is a single notification. Only the fields relevant to Type are set.
type Event struct {
	Type       Type
	Score      int    // ScoreChanged, GameOver
	Delta      int    // ScoreChanged
	Label      string // ScoreChanged outcome, CountdownStep value
	Ring       string // RingHit
	Level      int    // LevelStarted, LevelEnded, CountdownStep
	LevelName  string // LevelStarted, CountdownStep
	Projectile int    // RingHit, ProjectileFired
}

// Listener receives dispatched events.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(e Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// Dispatcher fans events out to subscribers. It is not safe for concurrent use;
// it belongs to the single goroutine driving a session.
type Dispatcher struct {
	listeners map[Type][]Listener
	all       []Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[Type][]Listener),
	}
}

// Subscribe registers l for events of type t.
func (d *Dispatcher) Subscribe(t Type, l Listener) {
	d.listeners[t] = append(d.listeners[t], l)
}

// SubscribeAll registers l for every event.
func (d *Dispatcher) SubscribeAll(l Listener) {
	d.all = append(d.all, l)
}

// Dispatch delivers e to type subscribers first, then to catch-all subscribers.
func (d *Dispatcher) Dispatch(e Event) {
	for _, l := range d.listeners[e.Type] {
		l.OnEvent(e)
	}
	for _, l := range d.all {
		l.OnEvent(e)
	}
}

// Clear drops every subscription.
func (d *Dispatcher) Clear() {
	clear(d.listeners)
	d.all = nil
}

// Queue is a Listener that buffers events until drained.
// Frontends subscribe one per session and drain it once per frame.
type Queue struct {
	events []Event
}

// OnEvent appends e to the queue.
func (q *Queue) OnEvent(e Event) {
	q.events = append(q.events, e)
}

// Drain returns all buffered events and empties the queue.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	return len(q.events)
}
