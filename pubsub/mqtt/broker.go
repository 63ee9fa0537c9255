package mqtt

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

// Root is prepended to every topic on the wire.
const Root = "cbus/"

// PublishTimeout bounds how long Emit waits for the broker to acknowledge.
var PublishTimeout = 10 * time.Second

var ErrConnectionLost = errors.New("connection lost")

type Broker struct {
	url        string
	client     MQTT.Client
	subscriber *Subscriber

	lost     chan struct{}
	lostOnce sync.Once
	err      error
}

func clientID(name string) string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("cbushome/%s-%s-%d", name, hostname, os.Getpid())
}

func newBroker(url string) *Broker {
	broker := &Broker{url: url, lost: make(chan struct{})}
	broker.subscriber = NewSubscriber(broker)
	return broker
}

// NewBroker connects to the mqtt server at url, eg: tcp://127.0.0.1:1883.
// The connection is not re-established once lost; Lost is closed instead.
func NewBroker(url string, name string) (*Broker, error) {
	broker := newBroker(url)

	opts := MQTT.NewClientOptions()
	opts.AddBroker(url)
	opts.SetClientID(clientID(name))
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(false)
	opts.SetDefaultPublishHandler(broker.subscriber.publishHandler)
	opts.SetConnectionLostHandler(broker.connectionLost)

	broker.client = MQTT.NewClient(opts)
	if token := broker.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "connecting to %s", url)
	}
	return broker, nil
}

func (self *Broker) connectionLost(client MQTT.Client, err error) {
	log.Println("Connection lost:", err)
	self.lostOnce.Do(func() {
		if err == nil {
			err = ErrConnectionLost
		}
		self.err = err
		close(self.lost)
	})
}

func (self *Broker) ID() string {
	return "mqtt: " + self.url
}

// Lost is closed when the connection to the broker drops.
func (self *Broker) Lost() <-chan struct{} {
	return self.lost
}

// Err returns why the connection was lost, or nil while it is up.
func (self *Broker) Err() error {
	select {
	case <-self.lost:
		return self.err
	default:
		return nil
	}
}

func (self *Broker) Subscriber() *Subscriber {
	return self.subscriber
}

func (self *Broker) Publisher() *Publisher {
	return &Publisher{broker: self}
}

func (self *Broker) Disconnect() {
	self.client.Disconnect(250)
}
