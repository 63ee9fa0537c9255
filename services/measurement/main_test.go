package measurement

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbushome/cbushome/cbus"
	"github.com/cbushome/cbushome/config"
	"github.com/cbushome/cbushome/onewire"
	"github.com/cbushome/cbushome/pubsub/dummy"
	"github.com/cbushome/cbushome/services"
)

func TestInterfaces(t *testing.T) {
	var _ services.Service = (*Service)(nil)
}

type fakeSensor struct {
	temps []float64
	err   error
}

func (self *fakeSensor) ID() string { return "28-fake" }

func (self *fakeSensor) Temperature() (float64, error) {
	if len(self.temps) == 0 {
		return 0, self.err
	}
	t := self.temps[0]
	self.temps = self.temps[1:]
	return t, nil
}

func testConf(interval time.Duration) config.MeasurementConf {
	return config.MeasurementConf{
		Application: 228,
		Device:      1,
		Channel:     1,
		Interval:    config.Duration{Duration: interval},
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "28-0316a27914ff"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "28-0316a27914ff", "w1_slave"), []byte("00 t=23456\n"), 0644))

	conf := config.DefaultConfig()
	conf.Measurement.Sensor.Path = dir
	service := &Service{}
	require.NoError(t, service.Init(conf))
	assert.Equal(t, "28-0316a27914ff", service.sensor.ID())

	pub := &dummy.Publisher{}
	session := cbus.NewSession(pub, &dummy.Subscriber{}, "HOME", 254)
	require.NoError(t, service.measure(session))
	require.Len(t, pub.Events, 1)
	fields := pub.Events[0].Fields
	assert.Equal(t, 23456, fields["value"])
	assert.Equal(t, -3, fields["exponent"])
	assert.Equal(t, 228, fields["application"])
	assert.Equal(t, 1, fields["device"])
	assert.Equal(t, 1, fields["channel"])
	assert.Equal(t, "celsius", fields["unit"])
}

func TestInitNoSensor(t *testing.T) {
	conf := config.DefaultConfig()
	conf.Measurement.Sensor.Path = t.TempDir()
	service := &Service{}
	assert.Equal(t, onewire.ErrNoDevice, service.Init(conf))
}

func TestRunPolls(t *testing.T) {
	sensor := &fakeSensor{temps: []float64{21.5, -0.0625, 22.0}, err: errors.New("device gone")}
	service := &Service{conf: testConf(time.Millisecond), sensor: sensor}
	pub := &dummy.Publisher{}
	session := cbus.NewSession(pub, &dummy.Subscriber{}, "HOME", 254)

	err := service.Run(session)
	assert.EqualError(t, err, "reading sensor: device gone")
	var values []interface{}
	for _, ev := range pub.Events {
		values = append(values, ev.Fields["value"])
	}
	assert.Equal(t, []interface{}{21500, -63, 22000}, values)
}

func TestRunPublishFailure(t *testing.T) {
	sensor := &fakeSensor{temps: []float64{21.5}}
	service := &Service{conf: testConf(time.Hour), sensor: sensor}
	pub := &dummy.Publisher{Err: errors.New("not connected")}
	session := cbus.NewSession(pub, &dummy.Subscriber{}, "HOME", 254)

	err := service.Run(session)
	assert.EqualError(t, err, "couldn't send to cbus: not connected")
}

func TestRunStopsOnClose(t *testing.T) {
	sensor := &fakeSensor{temps: []float64{21.5}}
	service := &Service{conf: testConf(time.Hour), sensor: sensor}
	pub := &dummy.Publisher{}
	session := cbus.NewSession(pub, &dummy.Subscriber{}, "HOME", 254)

	done := make(chan error)
	go func() { done <- service.Run(session) }()
	session.Close()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

type lostConnection struct{}

func (lostConnection) Lost() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (lostConnection) Err() error { return errors.New("EOF") }

func TestRunConnectionLost(t *testing.T) {
	sensor := &fakeSensor{temps: []float64{21.5}}
	service := &Service{conf: testConf(time.Hour), sensor: sensor}
	session := cbus.NewSession(&dummy.Publisher{}, &dummy.Subscriber{}, "HOME", 254)
	session.Watch(lostConnection{})

	done := make(chan error)
	go func() { done <- service.Run(session) }()
	select {
	case err := <-done:
		assert.EqualError(t, err, "gateway connection lost: EOF")
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}
