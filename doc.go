// C-Bus home automation helpers
//
// Two small programs that hang off a C-Gate server:
//
// - blinds: operates 433MHz RF motorised blinds from C-Bus lighting groups
// by bit-banging codes on a GPIO pin wired to a cheap transmitter.
//
// - measurement: publishes a DS18B20 one-wire temperature sensor to a C-Bus
// measurement channel every 20 seconds.
//
// Both take the C-Gate host and port as arguments and read optional
// configuration from ~/.config/cbushome/cbushome.yml.
package cbushome
