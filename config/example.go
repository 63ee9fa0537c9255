package config

import "gopkg.in/yaml.v2"

// DefaultYaml is used when there is no configuration file. The RF codes are
// for the Dooya style remotes the blinds shipped with: a 4800/1500us sync
// followed by 20 bits. Capture your own remote and replace them.
var DefaultYaml = `
gateway:
  project: HOME
  network: 254
gpio:
  driver: rpio
  chip: gpiochip0
  pin: 7
blinds:
  application: 56
  tune: 60
  channels:
    50:
      name: lounge
      open: [4800, 1500, 700, 350, 350, 700, 700, 350, 700, 350, 350, 700,
        350, 700, 700, 350, 700, 350, 700, 350, 350, 700, 350, 700,
        350, 700, 350, 700, 350, 700, 350, 700, 700, 350, 350, 700,
        350, 700, 350, 700, 700, 350]
      close: [4800, 1500, 700, 350, 350, 700, 700, 350, 700, 350, 350, 700,
        350, 700, 700, 350, 700, 350, 700, 350, 350, 700, 350, 700,
        350, 700, 350, 700, 350, 700, 700, 350, 700, 350, 350, 700,
        350, 700, 700, 350, 700, 350]
    51:
      name: kitchen
      open: [4800, 1500, 700, 350, 350, 700, 700, 350, 700, 350, 350, 700,
        350, 700, 700, 350, 700, 350, 700, 350, 350, 700, 350, 700,
        700, 350, 350, 700, 350, 700, 350, 700, 700, 350, 350, 700,
        350, 700, 350, 700, 700, 350]
      close: [4800, 1500, 700, 350, 350, 700, 700, 350, 700, 350, 350, 700,
        350, 700, 700, 350, 700, 350, 700, 350, 350, 700, 350, 700,
        700, 350, 350, 700, 350, 700, 700, 350, 700, 350, 350, 700,
        350, 700, 700, 350, 700, 350]
    52:
      name: bedroom
      open: [4800, 1500, 700, 350, 350, 700, 700, 350, 700, 350, 350, 700,
        350, 700, 700, 350, 700, 350, 700, 350, 700, 350, 700, 350,
        350, 700, 350, 700, 350, 700, 350, 700, 700, 350, 350, 700,
        350, 700, 350, 700, 700, 350]
      close: [4800, 1500, 700, 350, 350, 700, 700, 350, 700, 350, 350, 700,
        350, 700, 700, 350, 700, 350, 700, 350, 700, 350, 700, 350,
        350, 700, 350, 700, 350, 700, 700, 350, 700, 350, 350, 700,
        350, 700, 700, 350, 700, 350]
measurement:
  application: 228
  device: 1
  channel: 1
  interval: 20s
  sensor:
    driver: sysfs
    path: /sys/bus/w1/devices
    prefix: 28-
`

// DefaultConfig returns a fresh copy of the built in configuration.
func DefaultConfig() *Config {
	self := &Config{}
	if err := yaml.Unmarshal([]byte(DefaultYaml), self); err != nil {
		panic(err)
	}
	return self
}
