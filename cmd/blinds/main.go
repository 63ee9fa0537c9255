// Command blinds operates RF blinds from C-Bus lighting groups.
//
// Usage: blinds hostname port
package main

import (
	"github.com/cbushome/cbushome/services"
	"github.com/cbushome/cbushome/services/blinds"
)

func main() {
	services.Register(&blinds.Service{})
	services.Main("blinds")
}
