// Package sh provides the ishell backed interactive shell of the
// companion simulator.
package sh

import (
	"flag"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/intercore.go/pkg/sim"
)

// Shell wraps ishell with the companion bound into its context.
type Shell struct {
	Interactive bool

	Shell     *ishell.Shell
	Companion *sim.Companion
}

const shellKey = "$shell"

var (
	// flags

	evalOnly bool

	// commands registered by providers
	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by command providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(companion *sim.Companion) *Shell {
	s := &Shell{
		Interactive: !evalOnly,

		Shell:     ishell.New(),
		Companion: companion,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("rt-app > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// CompanionFrom gets the Companion from ishell context.
func CompanionFrom(c *ishell.Context) *sim.Companion {
	return ShellFrom(c).Companion
}

// Run runs the shell. With args the commands are processed and the
// shell exits; otherwise an interactive session starts.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}
