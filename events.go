package turingmachines

import "sync"

// Topic identifies a kind of engine notification.
type Topic int

const (
	TopicStateAdded Topic = iota
	TopicStateRemoved
	TopicStateRenamed
	TopicStateFlagsChanged
	TopicTransitionAdded
	TopicTransitionRemoved
	TopicTapeAdded
	TopicTapeRemoved
	TopicHeadAdded
	TopicHeadRemoved
	TopicHeadInitialMoved
	TopicSymbolAdded
	TopicSymbolEdited
	TopicSymbolRemoved
	TopicBoundChanged
	TopicInputWritten
	TopicReadSymbolAdded
	TopicReadSymbolRemoved
	TopicActionAdded
	TopicActionRemoved
	TopicCurrentStateChanged
	TopicHeadMoved
	TopicHeadWrite
	TopicTapeLoaded
	TopicTransitionFired
	TopicExploreStart
	TopicExploreEnd
	TopicError
)

var topicNames = [...]string{
	"state-added", "state-removed", "state-renamed", "state-flags-changed",
	"transition-added", "transition-removed",
	"tape-added", "tape-removed",
	"head-added", "head-removed", "head-initial-moved",
	"symbol-added", "symbol-edited", "symbol-removed",
	"bound-changed", "input-written",
	"read-symbol-added", "read-symbol-removed",
	"action-added", "action-removed",
	"current-state-changed", "head-moved", "head-write", "tape-loaded",
	"transition-fired", "explore-start", "explore-end", "error",
}

func (t Topic) String() string {
	if t < 0 || int(t) >= len(topicNames) {
		return "unknown"
	}
	return topicNames[t]
}

// Event is a single notification. Data holds one of the payload types below,
// depending on Topic.
type Event struct {
	Topic   Topic
	Machine *TuringMachine
	Data    any
}

// StatePayload accompanies state added/removed/renamed/flags and current-state-changed.
type StatePayload struct {
	State int
	Name  string
}

// TransitionPayload accompanies transition added/removed/fired.
type TransitionPayload struct {
	Transition *Transition
}

// TapePayload accompanies tape added/removed and tape-loaded.
type TapePayload struct {
	Tape *Tape
}

// HeadPayload accompanies head added/removed/moved and head-initial-moved.
type HeadPayload struct {
	Tape   *Tape
	Head   int
	Column int
	Line   int
}

// WritePayload accompanies head-write and input-written.
type WritePayload struct {
	Tape   *Tape
	Head   int
	Column int
	Line   int
	Symbol string
}

// SymbolPayload accompanies symbol added/edited/removed.
type SymbolPayload struct {
	Index    int
	Symbol   string
	Previous string
}

// BoundPayload accompanies bound-changed.
type BoundPayload struct {
	Tape  *Tape
	Side  Side
	Bound *int
}

// ReadSymbolPayload accompanies read-symbol added/removed.
type ReadSymbolPayload struct {
	Transition *Transition
	Tape       *Tape
	Head       int
	Symbol     string
}

// ActionPayload accompanies action added/removed.
type ActionPayload struct {
	Transition *Transition
	Index      int
	Action     Action
}

// ExplorePayload accompanies explore-start/end.
type ExplorePayload struct {
	Iterations int
	Accepting  bool
	Err        error
}

// ErrorPayload accompanies error.
type ErrorPayload struct {
	Err error
}

// Handler receives events for a topic it subscribed to.
type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// Bus is a synchronous publish/subscribe feed. Handlers run on the publishing
// goroutine, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic][]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers fn for topic and returns a function that unregisters it.
func (b *Bus) Subscribe(topic Topic, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[topic]
		for i, s := range list {
			if s.id == id {
				b.subs[topic] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers evt to every current subscriber of evt.Topic.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	list := b.subs[evt.Topic]
	b.mu.RUnlock()
	for _, s := range list {
		s.fn(evt)
	}
}

// HasSubscribers reports whether anyone listens on topic.
func (b *Bus) HasSubscribers(topic Topic) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic]) > 0
}
