// Package onewire reads temperatures from one-wire sensors exposed by the
// kernel's w1 driver.
package onewire

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const DevicesPath = "/sys/bus/w1/devices"

// FamilyDS18B20 is the device name prefix of DS18B20 sensors.
const FamilyDS18B20 = "28-"

// w1_slave reports are two short lines, anything longer is not one.
const maxReport = 1024

var (
	ErrNoDevice      = errors.New("no one-wire device found")
	ErrNoTemperature = errors.New("no temperature in report")
	ErrCRC           = errors.New("report failed crc check")
)

// Sensor reads a temperature in degrees Celsius.
type Sensor interface {
	ID() string
	Temperature() (float64, error)
}

// Device is a sensor read through sysfs.
type Device struct {
	Id   string
	Path string
}

// FindDevice returns the first device in dir whose name starts with prefix.
func FindDevice(dir string, prefix string) (*Device, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't find the w1 devices directory")
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), prefix) {
			return &Device{
				Id:   entry.Name(),
				Path: filepath.Join(dir, entry.Name(), "w1_slave"),
			}, nil
		}
	}
	return nil, ErrNoDevice
}

func (self *Device) ID() string {
	return self.Id
}

func (self *Device) Temperature() (float64, error) {
	f, err := os.Open(self.Path)
	if err != nil {
		return 0, errors.Wrap(err, "couldn't open the w1 device")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxReport))
	if err != nil {
		return 0, errors.Wrap(err, "reading w1 device")
	}
	return ParseReport(string(data))
}

var (
	reTemp = regexp.MustCompile(`t=(-?\d+)`)
	reCRC  = regexp.MustCompile(`crc=[0-9a-fA-F]+ (YES|NO)`)
)

// ParseReport extracts the temperature from a w1_slave report, eg:
//
//	72 01 4b 46 7f ff 0e 10 57 : crc=57 YES
//	72 01 4b 46 7f ff 0e 10 57 t=23125
//
// The value after t= is in millidegrees.
func ParseReport(report string) (float64, error) {
	if m := reCRC.FindStringSubmatch(report); m != nil && m[1] == "NO" {
		return 0, ErrCRC
	}
	m := reTemp.FindStringSubmatch(report)
	if m == nil {
		return 0, ErrNoTemperature
	}
	milli, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, errors.Wrap(err, "parsing temperature")
	}
	return float64(milli) / 1000, nil
}
