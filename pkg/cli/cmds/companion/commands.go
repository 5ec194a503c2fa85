// Package companion provides the simulator shell commands.
package companion

import (
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/intercore.go/pkg/cli/sh"
)

var (
	// ReplyCmd toggles or sets automatic replies.
	ReplyCmd = ishell.Cmd{
		Name:    "reply",
		Aliases: []string{"r"},
		Help:    "[on|off]",
		Func: func(c *ishell.Context) {
			companion := sh.CompanionFrom(c)
			switch {
			case len(c.Args) == 0:
				companion.SetAutoReply(!companion.AutoReply())
			case c.Args[0] == "on":
				companion.SetAutoReply(true)
			case c.Args[0] == "off":
				companion.SetAutoReply(false)
			default:
				c.Err(fmt.Errorf("expect on or off, got %q", c.Args[0]))
				return
			}
			c.Printf("auto-reply %s\n", onOff(companion.AutoReply()))
		},
	}

	// SendCmd sends an ad-hoc message to the peer.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "TEXT",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("TEXT required"))
				return
			}
			if err := sh.CompanionFrom(c).Send(strings.Join(c.Args, " ")); err != nil {
				c.Err(err)
			}
		},
	}

	// RebootCmd sends the reboot sentinel.
	RebootCmd = ishell.Cmd{
		Name: "reboot",
		Help: "",
		Func: func(c *ishell.Context) {
			if err := sh.CompanionFrom(c).Reboot(); err != nil {
				c.Err(err)
			}
		},
	}

	// StatusCmd prints the simulator state.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Help: "",
		Func: func(c *ishell.Context) {
			companion := sh.CompanionFrom(c)
			c.Printf("auto-reply %s, counter %02d\n",
				onOff(companion.AutoReply()), companion.Counter())
		},
	}
)

func onOff(en bool) string {
	if en {
		return "on"
	}
	return "off"
}

func init() {
	sh.AddCmds(
		&ReplyCmd,
		&SendCmd,
		&RebootCmd,
		&StatusCmd,
	)
}
