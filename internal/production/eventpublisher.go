package production

import (
	"context"
	"time"

	tm "github.com/comalice/turingmachines"
)

// PublishedEvent is a bus event flattened for consumers outside the engine.
type PublishedEvent struct {
	Topic     string
	MachineID string
	Data      any
	Timestamp time.Time
}

// ChannelPublisher forwards events to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch      chan<- PublishedEvent
	dropped int
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- PublishedEvent) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, evt tm.Event) error {
	pe := PublishedEvent{Topic: evt.Topic.String(), Data: evt.Data, Timestamp: time.Now()}
	if evt.Machine != nil {
		pe.MachineID = evt.Machine.ID()
	}
	select {
	case p.ch <- pe:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped++
		return nil
	}
}

// Dropped returns how many events were discarded because the channel was full.
// It must not be read concurrently with Publish.
func (p *ChannelPublisher) Dropped() int { return p.dropped }

// Attach subscribes the publisher to topics on bus. The returned function
// detaches it again.
func (p *ChannelPublisher) Attach(ctx context.Context, bus *tm.Bus, topics ...tm.Topic) (detach func()) {
	unsubs := make([]func(), 0, len(topics))
	for _, topic := range topics {
		unsubs = append(unsubs, bus.Subscribe(topic, func(evt tm.Event) {
			_ = p.Publish(ctx, evt)
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// RunTopics are the topics raised while a run is built or played back.
var RunTopics = []tm.Topic{
	tm.TopicExploreStart,
	tm.TopicExploreEnd,
	tm.TopicTransitionFired,
	tm.TopicHeadMoved,
	tm.TopicHeadWrite,
	tm.TopicCurrentStateChanged,
	tm.TopicTapeLoaded,
	tm.TopicError,
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
