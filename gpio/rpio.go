package gpio

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
)

// rpioLine uses /dev/gpiomem. Register writes cannot fail once the memory is
// mapped.
type rpioLine struct {
	pin rpio.Pin
}

func openRpio(n int) (Line, error) {
	if err := rpio.Open(); err != nil {
		return nil, errors.Wrap(err, "couldn't open /dev/gpiomem")
	}
	pin := rpio.Pin(n)
	pin.Output()
	pin.Low()
	return &rpioLine{pin}, nil
}

func (self *rpioLine) Write(level Level) error {
	if level == High {
		self.pin.High()
	} else {
		self.pin.Low()
	}
	return nil
}

func (self *rpioLine) Read() (Level, error) {
	if self.pin.Read() == rpio.High {
		return High, nil
	}
	return Low, nil
}

func (self *rpioLine) Close() error {
	self.pin.Low()
	return rpio.Close()
}
