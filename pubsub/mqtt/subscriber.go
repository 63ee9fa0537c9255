package mqtt

import (
	"log"
	"strings"
	"sync"

	MQTT "github.com/eclipse/paho.mqtt.golang"

	"github.com/cbushome/cbushome/pubsub"
)

type eventChannel struct {
	C      chan *pubsub.Event
	topics []pubsub.Topic
}

// Subscriber struct
type Subscriber struct {
	broker         *Broker
	channels       []eventChannel
	channelsLock   sync.Mutex
	topicCount     map[string]int
	topicCountLock sync.RWMutex
}

func NewSubscriber(broker *Broker) *Subscriber {
	return &Subscriber{broker: broker, topicCount: map[string]int{}}
}

func (self *Subscriber) ID() string {
	return self.broker.ID()
}

func (self *Subscriber) publishHandler(client MQTT.Client, msg MQTT.Message) {
	if !strings.HasPrefix(msg.Topic(), Root) {
		return
	}
	topic := msg.Topic()[len(Root):]
	event := pubsub.Parse(string(msg.Payload()), topic)
	if event == nil {
		log.Println("Couldn't parse message on", msg.Topic())
		return
	}
	event.SetRetained(msg.Retained())
	self.channelsLock.Lock()
	for _, ch := range self.channels {
		for _, t := range ch.topics {
			if t.Match(topic) {
				select {
				case ch.C <- event:
				default:
					log.Println("Subscriber not keeping up, dropped message on", msg.Topic())
				}
				break
			}
		}
	}
	self.channelsLock.Unlock()
}

func topicToMqtt(topic pubsub.Topic) string {
	switch topic := topic.(type) {
	case *pubsub.ExactTopic:
		return Root + topic.Exact
	default:
		log.Panicln("Topic type unsupported")
	}
	return ""
}

func (self *Subscriber) addChannel(topics []pubsub.Topic) eventChannel {
	// subscribe topics not yet subscribed to
	subs := map[string]byte{}
	self.topicCountLock.Lock()
	for _, topic := range topics {
		t := topicToMqtt(topic)
		if _, exists := self.topicCount[t]; !exists {
			subs[t] = 1 // QOS
		}
		self.topicCount[t] += 1
	}
	self.topicCountLock.Unlock()

	ch := eventChannel{
		C:      make(chan *pubsub.Event, 16),
		topics: topics,
	}
	self.channelsLock.Lock()
	self.channels = append(self.channels, ch)
	self.channelsLock.Unlock()

	if len(subs) > 0 {
		// nil = all messages go to the default handler
		if token := self.broker.client.SubscribeMultiple(subs, nil); token.Wait() && token.Error() != nil {
			log.Println("Error subscribing:", token.Error())
		}
	}

	return ch
}

func (self *Subscriber) Subscribe(topics ...pubsub.Topic) <-chan *pubsub.Event {
	ch := self.addChannel(topics)
	return ch.C
}

func (self *Subscriber) Close(channel <-chan *pubsub.Event) {
	var channels []eventChannel
	var unsubscribe []string
	self.channelsLock.Lock()
	for _, ch := range self.channels {
		if channel != (<-chan *pubsub.Event)(ch.C) {
			channels = append(channels, ch)
			continue
		}
		self.topicCountLock.Lock()
		for _, topic := range ch.topics {
			t := topicToMqtt(topic)
			self.topicCount[t] -= 1
			if self.topicCount[t] == 0 {
				delete(self.topicCount, t)
				unsubscribe = append(unsubscribe, t)
			}
		}
		self.topicCountLock.Unlock()
		close(ch.C)
	}
	self.channels = channels
	self.channelsLock.Unlock()

	if len(unsubscribe) > 0 {
		if token := self.broker.client.Unsubscribe(unsubscribe...); token.Wait() && token.Error() != nil {
			log.Println("Error unsubscribing:", token.Error())
		}
	}
}
