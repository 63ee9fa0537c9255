package dummy

import (
	"sync"

	"github.com/cbushome/cbushome/pubsub"
)

// Dummy Publisher for testing
type Publisher struct {
	// Err is returned from Emit when set, and the event is not recorded.
	Err    error
	Events []*pubsub.Event
	Closed bool
	mu     sync.Mutex
}

func (self *Publisher) ID() string {
	return "dummy"
}

func (self *Publisher) Emit(ev *pubsub.Event) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.Err != nil {
		return self.Err
	}
	self.Events = append(self.Events, ev)
	return nil
}

func (self *Publisher) Close() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.Closed = true
}
