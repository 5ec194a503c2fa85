package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/intercore.go/pkg/cli/sh"
	"github.com/robotalks/intercore.go/pkg/comm"
	"github.com/robotalks/intercore.go/pkg/sim"

	_ "github.com/robotalks/intercore.go/pkg/cli/cmds/companion"
)

func init() {
	sim.SetupFlags()
}

func main() {
	flag.Parse()

	conf := sim.NewConfig()
	companion := conf.NewCompanion()
	listeners := conf.MustListeners()

	runner := sim.NewRunner().HandleSignals()
	for _, lis := range listeners {
		lis := lis
		glog.Infof("serving %s", lis.Addr())
		runner.Go(lis.Addr(), func(ctx context.Context) error {
			defer lis.Close()
			return companion.Serve(ctx, lis)
		})
	}

	go func() {
		sh.New(companion).Run(flag.Args()...)
		runner.Cancel()
		closeAll(listeners)
	}()

	if err := runner.Wait(); err != nil {
		glog.Exitf("%v", err)
	}
}

func closeAll(listeners []comm.Listener) {
	for _, lis := range listeners {
		lis.Close()
	}
}
