// Package cbus talks to a C-Gate server through its MQTT bridge.
package cbus

import (
	"fmt"
	"log"
	"sync"

	"github.com/pkg/errors"

	"github.com/cbushome/cbushome/pubsub"
	"github.com/cbushome/cbushome/pubsub/mqtt"
)

// Session with a C-Gate project and network.
type Session struct {
	Project string
	Network int

	pub      pubsub.Publisher
	sub      pubsub.Subscriber
	lighting []<-chan *pubsub.Event
	done     chan struct{}
	once     sync.Once
	err      error
	mu       sync.Mutex
}

// Notifier reports the loss of the underlying transport.
type Notifier interface {
	Lost() <-chan struct{}
	Err() error
}

// Connect to the gateway at host:port.
func Connect(host string, port int, project string, network int) (*Session, error) {
	url := fmt.Sprintf("tcp://%s:%d", host, port)
	broker, err := mqtt.NewBroker(url, project)
	if err != nil {
		return nil, err
	}
	log.Println("Connected to", broker.ID())
	session := NewSession(broker.Publisher(), broker.Subscriber(), project, network)
	session.Watch(broker)
	return session, nil
}

func NewSession(pub pubsub.Publisher, sub pubsub.Subscriber, project string, network int) *Session {
	return &Session{
		Project: project,
		Network: network,
		pub:     pub,
		sub:     sub,
		done:    make(chan struct{}),
	}
}

// SetGroup sets a group level on this session's network.
func (self *Session) SetGroup(application, group, level int) error {
	ev := pubsub.NewEvent(TopicSetGroup, pubsub.Fields{
		"project":     self.Project,
		"network":     self.Network,
		"application": application,
		"group":       group,
		"level":       level,
	})
	return self.pub.Emit(ev)
}

func (self *Session) SendMeasurement(m Measurement) error {
	ev := pubsub.NewEvent(TopicMeasurement, pubsub.Fields{
		"project":     self.Project,
		"network":     self.Network,
		"application": m.Application,
		"device":      m.Device,
		"channel":     m.Channel,
		"value":       m.Value,
		"exponent":    m.Exponent,
		"unit":        string(m.Unit),
	})
	return self.pub.Emit(ev)
}

// Watch ends the session with an error once n reports the transport lost.
func (self *Session) Watch(n Notifier) {
	go func() {
		select {
		case <-n.Lost():
			self.shutdown(errors.Wrap(n.Err(), "gateway connection lost"))
		case <-self.done:
		}
	}()
}

// Lighting subscribes to lighting events. The channel is closed with the
// session.
func (self *Session) Lighting() <-chan *pubsub.Event {
	ch := self.sub.Subscribe(pubsub.Exact(TopicLighting))
	self.mu.Lock()
	self.lighting = append(self.lighting, ch)
	self.mu.Unlock()
	return ch
}

// Done is closed when the session is closed or the connection is lost.
func (self *Session) Done() <-chan struct{} {
	return self.done
}

// Err is nil unless the session ended because the connection was lost.
func (self *Session) Err() error {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.err
}

func (self *Session) Close() {
	self.shutdown(nil)
}

func (self *Session) shutdown(err error) {
	self.once.Do(func() {
		self.mu.Lock()
		self.err = err
		channels := self.lighting
		self.lighting = nil
		self.mu.Unlock()

		for _, ch := range channels {
			self.sub.Close(ch)
		}
		self.pub.Close()
		close(self.done)
	})
}
