package hlapp

import (
	"time"

	"github.com/robotalks/intercore.go/pkg/comm"
	"github.com/robotalks/intercore.go/pkg/comm/connect"
)

// DefaultComponentID is the well-known identifier of the real-time
// companion application.
const DefaultComponentID = "005180bc-402f-4cb3-a662-72937dbcde47"

// Defaults
const (
	DefaultSendPeriod  = time.Second
	DefaultRecvTimeout = 5 * time.Second
	DefaultRebootPause = 10 * time.Second
)

// Config defines the configuration for the high-level application.
// The application itself always runs with the defaults (it takes no
// flags); the struct exists for library embedding and tests.
type Config struct {
	ComponentID string
	SendPeriod  time.Duration
	RecvTimeout time.Duration
	RebootPause time.Duration

	// Dialer overrides the transport resolution. nil uses connect.Dial.
	Dialer func(string) (comm.Channel, error)
}

var defaultConfig = Config{
	ComponentID: DefaultComponentID,
	SendPeriod:  DefaultSendPeriod,
	RecvTimeout: DefaultRecvTimeout,
	RebootPause: DefaultRebootPause,
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

// NewApp creates the App.
func (c *Config) NewApp() *App {
	return &App{Config: *c}
}

func (c *Config) dial() (comm.Channel, error) {
	if c.Dialer != nil {
		return c.Dialer(c.ComponentID)
	}
	return connect.Dial(c.ComponentID)
}
