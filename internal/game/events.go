package game

// EventKind names a trigger the audio layer can react to.
type EventKind int

const (
	EventFire   EventKind = iota // a ship fired a volley
	EventBump                    // a collision with a game effect
	EventFall                    // a ship started falling
	EventPickup                  // a waiting companion joined the chain
)

// Event is one trigger raised during a tick.
type Event struct {
	Kind   EventKind
	ShipID int
	X, Y   float64
}

// eventQueue collects the current tick's triggers. Single goroutine, drained
// once per tick by the session's consumer; a plain slice is all this needs.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(kind EventKind, shipID int, x, y float64) {
	q.events = append(q.events, Event{Kind: kind, ShipID: shipID, X: x, Y: y})
}

// drain returns the queued events and empties the queue. The returned slice
// is valid until the next push.
func (q *eventQueue) drain() []Event {
	out := q.events
	q.events = q.events[:0]
	return out
}
