// Service to operate RF motorised blinds from C-Bus lighting groups, through
// a 433MHz transmitter on a GPIO pin.
package blinds

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/cbushome/cbushome/cbus"
	"github.com/cbushome/cbushome/config"
	"github.com/cbushome/cbushome/gpio"
	"github.com/cbushome/cbushome/pubsub"
	"github.com/cbushome/cbushome/rf"
)

// Service blinds
type Service struct {
	conf config.BlindsConf
	line gpio.Line
	tx   *rf.Transmitter
}

// ID of the service
func (self *Service) ID() string {
	return "blinds"
}

func (self *Service) Init(conf *config.Config) error {
	line, err := gpio.Open(conf.GPIO.Driver, conf.GPIO.Chip, conf.GPIO.Pin)
	if err != nil {
		return err
	}
	self.setup(conf.Blinds, line)
	return nil
}

func (self *Service) setup(conf config.BlindsConf, line gpio.Line) {
	self.conf = conf
	self.line = line
	self.tx = rf.NewTransmitter(line, time.Duration(conf.Tune)*time.Microsecond)
	log.Printf("%d blind channels", len(conf.Channels))
}

// groupOff acknowledges echoes by turning the group off.
type groupOff struct {
	session     *cbus.Session
	application int
}

func (self groupOff) Acknowledge(group int) error {
	log.Printf("Acknowledging group %d", group)
	return self.session.SetGroup(self.application, group, 0)
}

// Run the service
func (self *Service) Run(session *cbus.Session) error {
	defer self.line.Close()

	dispatcher := NewDispatcher(self.conf.Channels, self.tx, groupOff{session, self.conf.Application})
	events := session.Lighting()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return session.Err()
			}
			if err := self.handleEvent(dispatcher, ev); err != nil {
				return err
			}
		case <-session.Done():
			return session.Err()
		}
	}
}

func (self *Service) handleEvent(dispatcher *Dispatcher, ev *pubsub.Event) error {
	l, err := cbus.ParseLighting(ev)
	if err != nil {
		log.Println("Ignoring event:", err)
		return nil
	}
	log.Println("Received lighting event -", l)
	return errors.Wrapf(dispatcher.Dispatch(l.Group, l.Level), "group %d", l.Group)
}
