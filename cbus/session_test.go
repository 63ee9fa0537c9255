package cbus

import (
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbushome/cbushome/pubsub"
	"github.com/cbushome/cbushome/pubsub/dummy"
)

func newTestSession() (*Session, *dummy.Publisher, *dummy.Subscriber) {
	pub := &dummy.Publisher{}
	sub := &dummy.Subscriber{}
	return NewSession(pub, sub, "HOME", 254), pub, sub
}

func TestSetGroup(t *testing.T) {
	session, pub, _ := newTestSession()
	require.NoError(t, session.SetGroup(56, 50, 0))
	require.Len(t, pub.Events, 1)
	ev := pub.Events[0]
	assert.Equal(t, "lighting/set", ev.Topic)
	assert.Equal(t, pubsub.Fields{
		"project": "HOME", "network": 254, "application": 56, "group": 50, "level": 0,
	}, ev.Fields)
}

func TestSendMeasurement(t *testing.T) {
	session, pub, _ := newTestSession()
	m := Measurement{Application: 228, Device: 1, Channel: 1, Value: 23456, Exponent: -3, Unit: UnitCelsius}
	require.NoError(t, session.SendMeasurement(m))
	require.Len(t, pub.Events, 1)
	ev := pub.Events[0]
	assert.Equal(t, "measurement", ev.Topic)
	assert.Equal(t, 23456, ev.Fields["value"])
	assert.Equal(t, -3, ev.Fields["exponent"])
	assert.Equal(t, "celsius", ev.Fields["unit"])
}

func TestEmitError(t *testing.T) {
	session, pub, _ := newTestSession()
	pub.Err = fmt.Errorf("not connected")
	assert.EqualError(t, session.SetGroup(56, 50, 0), "not connected")
	assert.EqualError(t, session.SendMeasurement(Measurement{}), "not connected")
}

func TestLighting(t *testing.T) {
	session, _, sub := newTestSession()
	sub.Events = []*pubsub.Event{
		NewLightingEvent(LightingEvent{254, 56, 50, 100, 0}),
		pubsub.NewEvent("measurement", nil),
		NewLightingEvent(LightingEvent{254, 56, 51, 0, 4}),
	}
	var groups []int
	for ev := range session.Lighting() {
		l, err := ParseLighting(ev)
		require.NoError(t, err)
		groups = append(groups, l.Group)
	}
	assert.Equal(t, []int{50, 51}, groups)
}

func TestClose(t *testing.T) {
	session, pub, sub := newTestSession()
	ch := session.Lighting()
	session.Close()
	session.Close()
	assert.True(t, pub.Closed)
	assert.Equal(t, []<-chan *pubsub.Event{ch}, sub.Closed)
	assert.NoError(t, session.Err())
	select {
	case <-session.Done():
	default:
		t.Error("Done not closed")
	}
}

type fakeNotifier struct {
	lost chan struct{}
	err  error
}

func (self *fakeNotifier) Lost() <-chan struct{} { return self.lost }
func (self *fakeNotifier) Err() error            { return self.err }

func TestWatchConnectionLost(t *testing.T) {
	session, pub, sub := newTestSession()
	ch := session.Lighting()
	n := &fakeNotifier{lost: make(chan struct{}), err: errors.New("EOF")}
	session.Watch(n)
	close(n.lost)

	select {
	case <-session.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after connection loss")
	}
	assert.EqualError(t, session.Err(), "gateway connection lost: EOF")
	assert.True(t, pub.Closed)
	assert.Equal(t, []<-chan *pubsub.Event{ch}, sub.Closed)
}

func TestWatchStopsOnClose(t *testing.T) {
	session, _, _ := newTestSession()
	n := &fakeNotifier{lost: make(chan struct{}), err: errors.New("EOF")}
	session.Watch(n)
	session.Close()
	close(n.lost)
	time.Sleep(10 * time.Millisecond)
	assert.NoError(t, session.Err())
}

func TestParseLighting(t *testing.T) {
	ev := pubsub.Parse(`{"topic":"lighting","network":254,"application":56,"group":50,"level":2,"rate":0}`, "")
	l, err := ParseLighting(ev)
	require.NoError(t, err)
	assert.Equal(t, LightingEvent{Network: 254, Application: 56, Group: 50, Level: 2}, l)

	ev = pubsub.Parse(`{"topic":"lighting","network":254,"application":56,"group":50,"level":255}`, "")
	_, err = ParseLighting(ev)
	assert.Error(t, err)

	ev = pubsub.Parse(`{"topic":"lighting","network":254,"application":56,"level":0}`, "")
	_, err = ParseLighting(ev)
	assert.Error(t, err)
}

func ExampleLightingEvent_String() {
	fmt.Println(LightingEvent{254, 56, 50, 100, 0})
	// Output:
	// Network = 254 : Application = 56 : Group = 50 : Level = 100 : Ramp Rate = 0
}
