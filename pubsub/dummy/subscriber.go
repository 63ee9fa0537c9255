package dummy

import (
	"sync"

	"github.com/cbushome/cbushome/pubsub"
)

// Subscriber for testing. Events are replayed to each subscription and the
// channel is closed once they are exhausted.
type Subscriber struct {
	subscriptions []pubsub.Topic
	Events        []*pubsub.Event
	Closed        []<-chan *pubsub.Event
	mu            sync.Mutex
}

// ID of Subscriber
func (sub *Subscriber) ID() string {
	return "dummy"
}

func (sub *Subscriber) replayEvents(topics []pubsub.Topic) <-chan *pubsub.Event {
	ch := make(chan *pubsub.Event)
	go func() {
		for _, ev := range sub.Events {
			for _, s := range topics {
				if s.Match(ev.Topic) {
					ch <- ev
					break
				}
			}
		}
		close(ch)
	}()
	return ch
}

func (sub *Subscriber) Subscribe(topics ...pubsub.Topic) <-chan *pubsub.Event {
	sub.mu.Lock()
	sub.subscriptions = append(sub.subscriptions, topics...)
	sub.mu.Unlock()
	return sub.replayEvents(topics)
}

// Close records the channel. It is closed by the replay once the events run
// out.
func (sub *Subscriber) Close(ch <-chan *pubsub.Event) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	sub.Closed = append(sub.Closed, ch)
}
