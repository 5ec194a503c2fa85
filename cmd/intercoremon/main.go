package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"os"

	"github.com/robotalks/intercore.go/pkg/comm"
	"github.com/robotalks/intercore.go/pkg/comm/mqtt"
	"github.com/robotalks/intercore.go/pkg/hlapp"
)

var (
	mqttURL     = "mqtt://localhost:1883/intercore/"
	componentID = hlapp.DefaultComponentID
)

func init() {
	if val := os.Getenv("INTERCORE_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&componentID, "id", componentID, "Companion component identifier.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}

	dump := func(topic string, payload []byte) {
		log.Printf("%s: %d bytes: %s", topic, len(payload), comm.PrintableString(payload))
	}
	q.Sub(componentID+"/cmd", dump)
	q.Sub(componentID+"/msg", dump)
	token := q.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		log.Fatalln(err)
	}
	<-(chan struct{})(nil)
}
