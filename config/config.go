// Package config loads the optional cbushome.yml from the user's config
// directory ($XDG_CONFIG_HOME/cbushome, or ~/.config/cbushome). The file is
// not required: without it the built in DefaultConfig is used, and any value
// it leaves unset keeps its default.
package config

import (
	"io"
	"io/ioutil"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type GatewayConf struct {
	Project string
	Network int
}

type GPIOConf struct {
	// Driver is one of rpio, gpiod or periph.
	Driver string
	Chip   string
	Pin    int
}

// ChannelConf holds the RF codes for one blind group. Durations are in
// microseconds, alternating high/low starting high.
type ChannelConf struct {
	Name  string
	Open  []uint32
	Close []uint32
}

type BlindsConf struct {
	Application int
	// Tune is subtracted from every pulse duration, in microseconds.
	Tune     uint32
	Channels map[int]ChannelConf
}

type SensorConf struct {
	// Driver is one of sysfs or ds18b20.
	Driver string
	Path   string
	Prefix string
}

type MeasurementConf struct {
	Application int
	Device      int
	Channel     int
	Interval    Duration
	Sensor      SensorConf
}

type Duration struct {
	time.Duration
}

func (self *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	self.Duration = d
	return nil
}

// Configuration structure
type Config struct {
	Gateway     GatewayConf
	GPIO        GPIOConf `yaml:"gpio"`
	Blinds      BlindsConf
	Measurement MeasurementConf
}

// Open configuration from disk, or the built in defaults if there is no
// configuration file.
func Open() (*Config, error) {
	file, err := os.Open(ConfigPath("cbushome.yml"))
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return OpenReader(file)
}

// Open configuration from a reader.
func OpenReader(r io.Reader) (*Config, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return OpenRaw(data)
}

// Open configuration from []byte. Unset values take the defaults.
func OpenRaw(data []byte) (*Config, error) {
	self := DefaultConfig()
	self.Blinds.Channels = nil
	if err := yaml.Unmarshal(data, self); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if self.Blinds.Channels == nil {
		self.Blinds.Channels = DefaultConfig().Blinds.Channels
	}
	if err := self.Validate(); err != nil {
		return nil, err
	}
	return self, nil
}

func (self *Config) Validate() error {
	if self.Gateway.Project == "" {
		return errors.New("gateway project required")
	}
	for group, ch := range self.Blinds.Channels {
		if ch.Open == nil && ch.Close == nil {
			return errors.Errorf("blinds channel %d: no codes", group)
		}
		if ch.Open != nil && len(ch.Open) == 0 {
			return errors.Errorf("blinds channel %d: empty open code", group)
		}
		if ch.Close != nil && len(ch.Close) == 0 {
			return errors.Errorf("blinds channel %d: empty close code", group)
		}
	}
	if self.Measurement.Interval.Duration <= 0 {
		return errors.New("measurement interval must be positive")
	}
	return nil
}

// helpers

// Resolve a configuration file under .config/cbushome
func ConfigPath(p string) string {
	config := os.Getenv("XDG_CONFIG_HOME")
	if config == "" {
		config = path.Join(os.Getenv("HOME"), ".config")
	}
	return path.Join(config, "cbushome", p)
}
