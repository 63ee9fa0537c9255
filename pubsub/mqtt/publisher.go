package mqtt

import (
	"github.com/pkg/errors"

	"github.com/cbushome/cbushome/pubsub"
)

// Publisher for mqtt
type Publisher struct {
	broker *Broker
}

// ID of Publisher
func (pub *Publisher) ID() string {
	return pub.broker.ID()
}

// Emit an event and block until the broker has acknowledged it, for at most
// PublishTimeout.
func (pub *Publisher) Emit(ev *pubsub.Event) error {
	topic := Root + ev.Topic
	token := pub.broker.client.Publish(topic, 1, ev.Retained, ev.Bytes())
	if !token.WaitTimeout(PublishTimeout) {
		return errors.Errorf("publishing %s: timed out after %s", topic, PublishTimeout)
	}
	if err := token.Error(); err != nil {
		return errors.Wrapf(err, "publishing %s", topic)
	}
	return nil
}

func (pub *Publisher) Close() {
	pub.broker.Disconnect()
}
