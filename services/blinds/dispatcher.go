package blinds

import (
	"log"
	"sync"

	"github.com/cbushome/cbushome/config"
	"github.com/cbushome/cbushome/rf"
)

const (
	// LevelEcho is the level the eDLT sends back when its widget is set to
	// shutter relay. It is acknowledged, not acted on.
	LevelEcho = 2
	// LevelClose and below closes.
	LevelClose = 1
	// LevelOpen and above opens.
	LevelOpen = 99
)

type Transmitter interface {
	Transmit(seq rf.PulseSequence) error
}

type Acknowledger interface {
	Acknowledge(group int) error
}

type codes struct {
	name        string
	open, close rf.PulseSequence
}

// Dispatcher picks the RF code for a group and level.
type Dispatcher struct {
	channels map[int]codes
	tx       Transmitter
	ack      Acknowledger
	mu       sync.Mutex
}

func NewDispatcher(channels map[int]config.ChannelConf, tx Transmitter, ack Acknowledger) *Dispatcher {
	d := &Dispatcher{
		channels: map[int]codes{},
		tx:       tx,
		ack:      ack,
	}
	for group, ch := range channels {
		d.channels[group] = codes{
			name:  ch.Name,
			open:  rf.PulseSequence(ch.Open),
			close: rf.PulseSequence(ch.Close),
		}
	}
	return d
}

// Dispatch acts on a level change of group. Groups without codes and
// intermediate levels are ignored.
func (self *Dispatcher) Dispatch(group, level int) error {
	ch, ok := self.channels[group]
	if !ok {
		return nil
	}

	var seq rf.PulseSequence
	var command string
	switch {
	case level == LevelEcho:
		// the eDLT indicator stays lit unless the group is turned off
		return self.ack.Acknowledge(group)
	case level <= LevelClose:
		seq, command = ch.close, "close"
	case level >= LevelOpen:
		seq, command = ch.open, "open"
	default:
		return nil
	}
	if len(seq) == 0 {
		log.Printf("No %s code for %s (group %d)", command, ch.name, group)
		return nil
	}

	self.mu.Lock()
	defer self.mu.Unlock()
	if err := self.tx.Transmit(seq); err != nil {
		return err
	}
	log.Printf("Sent RF command: %s %s (%s)", command, ch.name, seq.Duration())
	return nil
}
