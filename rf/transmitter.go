// Package rf transmits RF remote control codes by bit-banging a 433MHz
// transmitter's data line.
package rf

import (
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/cbushome/cbushome/gpio"
)

// PulseSequence is a list of half-period durations in microseconds,
// alternating high and low, starting high.
type PulseSequence []uint32

// Duration is the nominal airtime of the sequence.
func (seq PulseSequence) Duration() time.Duration {
	var total time.Duration
	for _, us := range seq {
		total += time.Duration(us) * time.Microsecond
	}
	return total
}

var ErrEmptySequence = errors.New("empty pulse sequence")

// Transmitter plays pulse sequences on a line. The line is low between
// transmissions.
type Transmitter struct {
	// Sleep waits between transitions, time.Sleep by default.
	Sleep func(time.Duration)

	line gpio.Line
	tune time.Duration
	mu   sync.Mutex
}

// NewTransmitter creates a transmitter. tune is subtracted from every pulse to
// account for the time spent toggling the line on this host.
func NewTransmitter(line gpio.Line, tune time.Duration) *Transmitter {
	return &Transmitter{
		Sleep: time.Sleep,
		line:  line,
		tune:  tune,
	}
}

// Transmit drives the line high, then for each duration sleeps and toggles the
// line. The line is always left low afterwards. Only one sequence is on air at
// a time; concurrent callers wait their turn.
func (self *Transmitter) Transmit(seq PulseSequence) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}

	self.mu.Lock()
	defer self.mu.Unlock()

	err := self.play(seq)
	if rerr := self.line.Write(gpio.Low); rerr != nil && err == nil {
		err = errors.Wrap(rerr, "resetting line")
	}
	return err
}

func (self *Transmitter) play(seq PulseSequence) error {
	if err := self.line.Write(gpio.High); err != nil {
		return errors.Wrap(err, "starting pulse train")
	}
	for i, us := range seq {
		wait := time.Duration(us)*time.Microsecond - self.tune
		if wait < 0 {
			log.Printf("Pulse %d of %dus is shorter than tune %s, clamped to 0", i, us, self.tune)
			wait = 0
		}
		self.Sleep(wait)
		if err := self.toggle(); err != nil {
			return errors.Wrapf(err, "pulse %d", i)
		}
	}
	return nil
}

func (self *Transmitter) toggle() error {
	level, err := self.line.Read()
	if err != nil {
		return err
	}
	return self.line.Write(level.Invert())
}
