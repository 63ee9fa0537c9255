package onewire

import (
	"github.com/pkg/errors"

	"github.com/cbushome/cbushome/config"
)

// Open finds the configured sensor.
func Open(conf config.SensorConf) (Sensor, error) {
	prefix := conf.Prefix
	if prefix == "" {
		prefix = FamilyDS18B20
	}
	switch conf.Driver {
	case "", "sysfs":
		dir := conf.Path
		if dir == "" {
			dir = DevicesPath
		}
		return FindDevice(dir, prefix)
	case "ds18b20":
		return findDS18B20(prefix)
	}
	return nil, errors.Errorf("unknown sensor driver: %s", conf.Driver)
}
