package gpio

import (
	"github.com/pkg/errors"
	"github.com/warthog618/gpiod"
)

type gpiodLine struct {
	chip *gpiod.Chip
	line *gpiod.Line
}

func openGpiod(chip string, offset int) (Line, error) {
	if chip == "" {
		chip = "gpiochip0"
	}
	c, err := gpiod.NewChip(chip, gpiod.WithConsumer("cbushome"))
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", chip)
	}
	l, err := c.RequestLine(offset, gpiod.AsOutput(0))
	if err != nil {
		c.Close()
		return nil, errors.Wrapf(err, "requesting %s line %d", chip, offset)
	}
	return &gpiodLine{chip: c, line: l}, nil
}

func (self *gpiodLine) Write(level Level) error {
	return self.line.SetValue(int(level))
}

func (self *gpiodLine) Read() (Level, error) {
	v, err := self.line.Value()
	if err != nil {
		return Low, err
	}
	if v != 0 {
		return High, nil
	}
	return Low, nil
}

func (self *gpiodLine) Close() error {
	return firstError(
		errors.Wrap(self.line.SetValue(0), "resetting line"),
		// revert to input so the transmitter is not left driven
		errors.Wrap(self.line.Reconfigure(gpiod.AsInput), "releasing line"),
		self.line.Close(),
		self.chip.Close(),
	)
}
