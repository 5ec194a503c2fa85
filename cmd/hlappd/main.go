package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/robotalks/intercore.go/pkg/hlapp"
)

func main() {
	// diagnostic (glog) flags only, the application itself takes no
	// configuration
	flag.Parse()

	app := hlapp.NewConfig().NewApp()
	app.WatchSignals()
	code := app.Main()
	glog.Infof("exiting: %s (%d)", code, int(code))
	glog.Flush()
	os.Exit(int(code))
}
