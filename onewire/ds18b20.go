package onewire

import (
	"strings"

	"github.com/yryz/ds18b20"
)

// ds18b20Sensor reads through github.com/yryz/ds18b20, which always uses the
// w1 bus master's slave list.
type ds18b20Sensor struct {
	id string
}

func findDS18B20(prefix string) (Sensor, error) {
	sensors, err := ds18b20.Sensors()
	if err != nil {
		return nil, err
	}
	for _, id := range sensors {
		if strings.HasPrefix(id, prefix) {
			return &ds18b20Sensor{id}, nil
		}
	}
	return nil, ErrNoDevice
}

func (self *ds18b20Sensor) ID() string {
	return self.id
}

func (self *ds18b20Sensor) Temperature() (float64, error) {
	return ds18b20.Temperature(self.id)
}
