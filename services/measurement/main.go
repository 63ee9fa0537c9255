// Service to publish a one-wire temperature sensor's readings to C-Bus.
package measurement

import (
	"log"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/cbushome/cbushome/cbus"
	"github.com/cbushome/cbushome/config"
	"github.com/cbushome/cbushome/onewire"
)

// Service measurement
type Service struct {
	conf   config.MeasurementConf
	sensor onewire.Sensor
}

// ID of the service
func (self *Service) ID() string {
	return "measurement"
}

func (self *Service) Init(conf *config.Config) error {
	sensor, err := onewire.Open(conf.Measurement.Sensor)
	if err != nil {
		return err
	}
	log.Println("w1 Device:", sensor.ID())
	self.conf = conf.Measurement
	self.sensor = sensor
	return nil
}

func (self *Service) measure(session *cbus.Session) error {
	temp, err := self.sensor.Temperature()
	if err != nil {
		return errors.Wrap(err, "reading sensor")
	}
	log.Printf("Temp: %.3f C\n", temp)
	m := cbus.Measurement{
		Application: self.conf.Application,
		Device:      self.conf.Device,
		Channel:     self.conf.Channel,
		Value:       int(math.Round(temp * 1000)),
		Exponent:    -3,
		Unit:        cbus.UnitCelsius,
	}
	if err := session.SendMeasurement(m); err != nil {
		return errors.Wrap(err, "couldn't send to cbus")
	}
	return nil
}

// Run the service
func (self *Service) Run(session *cbus.Session) error {
	if err := self.measure(session); err != nil {
		return err
	}
	ticker := time.NewTicker(self.conf.Interval.Duration)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := self.measure(session); err != nil {
				return err
			}
		case <-session.Done():
			return session.Err()
		}
	}
}
