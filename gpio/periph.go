package gpio

import (
	"fmt"

	"github.com/pkg/errors"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type periphLine struct {
	pin pgpio.PinIO
}

func openPeriph(n int) (Line, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "initialising periph host")
	}
	name := fmt.Sprintf("GPIO%d", n)
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, errors.Errorf("no such pin: %s", name)
	}
	if err := pin.Out(pgpio.Low); err != nil {
		return nil, errors.Wrapf(err, "setting %s to output", name)
	}
	return &periphLine{pin}, nil
}

func (self *periphLine) Write(level Level) error {
	return self.pin.Out(level == High)
}

func (self *periphLine) Read() (Level, error) {
	if self.pin.Read() == pgpio.High {
		return High, nil
	}
	return Low, nil
}

func (self *periphLine) Close() error {
	return self.pin.Out(pgpio.Low)
}
