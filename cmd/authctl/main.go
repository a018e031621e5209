package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/mkozyrev/gatekeeper/internal/client/cli"
)

func main() {
	url := flag.String("n", "nats://127.0.0.1:4222", "NATS URL")
	timeout := flag.Duration("t", 5*time.Second, "request timeout")
	flag.Parse()

	client, err := cli.Dial(*url, *timeout)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer client.Close()

	app := cli.NewApp(client)
	app.Run(context.Background())
}
