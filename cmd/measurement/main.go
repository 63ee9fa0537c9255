// Command measurement publishes a one-wire temperature sensor to C-Bus every
// 20 seconds.
//
// Usage: measurement hostname port
package main

import (
	"github.com/cbushome/cbushome/services"
	"github.com/cbushome/cbushome/services/measurement"
)

func main() {
	services.Register(&measurement.Service{})
	services.Main("measurement")
}
