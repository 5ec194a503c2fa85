package sim

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/robotalks/intercore.go/pkg/comm"
	"github.com/robotalks/intercore.go/pkg/comm/connect"
	"github.com/robotalks/intercore.go/pkg/hlapp"
)

// Config defines the configuration for the simulator.
type Config struct {
	// Listen enumerates companion endpoints to serve. Empty uses the
	// well-known local component identifier.
	Listen []string
	// AutoReply switches the automatic counter reply.
	AutoReply bool
}

var defaultConfig = Config{
	AutoReply: true,
}

func init() {
	if val := os.Getenv("INTERCORE_LISTEN"); val != "" {
		defaultConfig.Listen = strings.Split(val, ",")
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Var(listValue{&defaultConfig.Listen}, "listen",
		"Companion endpoint to serve, repeatable.")
	flag.BoolVar(&defaultConfig.AutoReply, "auto-reply", defaultConfig.AutoReply,
		"Reply every received message with a cycling counter message.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Endpoints resolves the configured endpoints.
func (c *Config) Endpoints() []string {
	if len(c.Listen) == 0 {
		return []string{hlapp.DefaultComponentID}
	}
	return c.Listen
}

// NewCompanion creates the Companion.
func (c *Config) NewCompanion() *Companion {
	return NewCompanion(c.AutoReply)
}

// MustListeners binds all configured endpoints and fails on error.
func (c *Config) MustListeners() []comm.Listener {
	endpoints := c.Endpoints()
	listeners := make([]comm.Listener, 0, len(endpoints))
	for _, endpoint := range endpoints {
		lis, err := connect.Listen(endpoint)
		if err != nil {
			log.Fatalf("listen %q failed: %v", endpoint, err)
		}
		listeners = append(listeners, lis)
	}
	return listeners
}

type listValue struct {
	items *[]string
}

// String implements flag.Value.
func (v listValue) String() string {
	if v.items == nil {
		return ""
	}
	return strings.Join(*v.items, ",")
}

// Set implements flag.Value.
func (v listValue) Set(val string) error {
	*v.items = append(*v.items, val)
	return nil
}
