package cbus

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cbushome/cbushome/pubsub"
)

const (
	TopicLighting    = "lighting"
	TopicSetGroup    = "lighting/set"
	TopicMeasurement = "measurement"
)

// LightingEvent is a group level change seen on the network.
type LightingEvent struct {
	Network     int
	Application int
	Group       int
	Level       int
	Rate        int
}

func (ev LightingEvent) String() string {
	return fmt.Sprintf("Network = %d : Application = %d : Group = %d : Level = %d : Ramp Rate = %d",
		ev.Network, ev.Application, ev.Group, ev.Level, ev.Rate)
}

// ParseLighting decodes a lighting event. Rate is optional.
func ParseLighting(ev *pubsub.Event) (LightingEvent, error) {
	var ret LightingEvent
	for _, f := range []struct {
		name string
		dest *int
	}{
		{"network", &ret.Network},
		{"application", &ret.Application},
		{"group", &ret.Group},
		{"level", &ret.Level},
	} {
		v, ok := ev.IntField(f.name)
		if !ok {
			return ret, errors.Errorf("lighting event missing %s: %s", f.name, ev)
		}
		*f.dest = v
	}
	ret.Rate, _ = ev.IntField("rate")
	if ret.Level < 0 || ret.Level > 100 {
		return ret, errors.Errorf("lighting event level out of range: %d", ret.Level)
	}
	return ret, nil
}

func NewLightingEvent(l LightingEvent) *pubsub.Event {
	return pubsub.NewEvent(TopicLighting, pubsub.Fields{
		"network":     l.Network,
		"application": l.Application,
		"group":       l.Group,
		"level":       l.Level,
		"rate":        l.Rate,
	})
}

type Unit string

const UnitCelsius Unit = "celsius"

// Measurement is a value of Value * 10^Exponent in Unit.
type Measurement struct {
	Application int
	Device      int
	Channel     int
	Value       int
	Exponent    int
	Unit        Unit
}

func (m Measurement) String() string {
	return fmt.Sprintf("%de%d %s", m.Value, m.Exponent, m.Unit)
}
