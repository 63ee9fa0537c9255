// Package gpio drives a single digital output line through one of several
// host GPIO stacks.
package gpio

import "github.com/pkg/errors"

type Level int

const (
	Low  Level = 0
	High Level = 1
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// Invert returns the opposite level.
func (l Level) Invert() Level {
	if l == High {
		return Low
	}
	return High
}

// Line is an output line.
type Line interface {
	Write(Level) error
	Read() (Level, error)
	Close() error
}

// Open configures pin as an output, initially low, using the named driver.
// The chip is only used by the gpiod driver.
func Open(driver string, chip string, pin int) (Line, error) {
	switch driver {
	case "", "rpio":
		return openRpio(pin)
	case "gpiod":
		return openGpiod(chip, pin)
	case "periph":
		return openPeriph(pin)
	}
	return nil, errors.Errorf("unknown gpio driver: %s", driver)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
