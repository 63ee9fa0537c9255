package services

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/pkg/errors"

	"github.com/cbushome/cbushome/cbus"
	"github.com/cbushome/cbushome/config"
)

// Service interface
type Service interface {
	ID() string
	// Init claims local hardware once the gateway is connected.
	Init(conf *config.Config) error
	// Run until the session closes or an unrecoverable error occurs.
	Run(session *cbus.Session) error
}

var serviceMap map[string]Service = map[string]Service{}

var ErrUsage = errors.New("usage")

func SetupLogging() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	log.SetOutput(os.Stdout)
}

func Register(service Service) {
	if _, exists := serviceMap[service.ID()]; exists {
		log.Fatalf("Duplicate service registered: %s", service.ID())
	}
	serviceMap[service.ID()] = service
}

// ParseArgs parses the <hostname> <port> command line.
func ParseArgs(args []string) (host string, port int, err error) {
	if len(args) < 3 {
		return "", 0, ErrUsage
	}
	port, err = strconv.Atoi(args[2])
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, ErrUsage
	}
	return args[1], port, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// Main runs the named service as a process.
func Main(name string) {
	service, ok := serviceMap[name]
	if !ok {
		fatalf("Service %s does not exist", name)
	}

	host, port, err := ParseArgs(os.Args)
	if err != nil {
		fatalf("usage %s hostname port", filepath.Base(os.Args[0]))
	}

	SetupLogging()

	conf, err := config.Open()
	if err != nil {
		fatalf("Error reading config: %s", err)
	}

	// Init claims hardware, so it runs only once connected
	session, err := cbus.Connect(host, port, conf.Gateway.Project, conf.Gateway.Network)
	if err != nil {
		fatalf("Couldn't connect to C-Gate: %s", err)
	}

	if err := service.Init(conf); err != nil {
		session.Close()
		fatalf("Error init service %s: %s", name, err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.Println("Received", sig)
		session.Close()
	}()

	log.Printf("Starting %s\n", name)
	err = service.Run(session)
	session.Close()
	if err != nil {
		fatalf("Error running service %s: %s", name, err)
	}
}
