//go:build watch
// +build watch

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ssorr707/discord-system-bot2/infrastructure"

	"github.com/nats-io/nats.go"
)

func main() {
	var (
		servers = flag.String("nats", "nats://localhost:4222", "NATS server addresses")
		subject = flag.String("subject", "settings.>", "Subject filter to watch")
		all     = flag.Bool("all", false, "Replay every stored event instead of only new ones")
		raw     = flag.Bool("raw", false, "Print the raw message body")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print settings change events published by the bot.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  # Follow verification changes only\n")
		fmt.Fprintf(os.Stderr, "  go run -tags watch ./scripts --subject=settings.verification.updated\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	nc, err := nats.Connect(*servers, nats.Name("settings-event-watcher"))
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer nc.Drain()

	js, err := nc.JetStream()
	if err != nil {
		log.Fatalf("Failed to create JetStream context: %v", err)
	}

	deliver := nats.DeliverNew()
	if *all {
		deliver = nats.DeliverAll()
	}

	sub, err := js.Subscribe(*subject, func(msg *nats.Msg) {
		if *raw {
			fmt.Println(string(msg.Data))
			return
		}

		var envelope infrastructure.EventEnvelope
		if err := json.Unmarshal(msg.Data, &envelope); err != nil {
			log.Printf("Skipping malformed message on %s: %v", msg.Subject, err)
			return
		}
		fmt.Printf("%s  %-32s %s\n  %s\n",
			envelope.Timestamp.Format("15:04:05.000"), envelope.EventType, envelope.EventID, envelope.Payload)
	}, nats.BindStream(infrastructure.SettingsEventStream), deliver, nats.AckNone())
	if err != nil {
		log.Fatalf("Failed to subscribe to %s: %v", *subject, err)
	}
	defer sub.Unsubscribe()

	log.Printf("Watching %s on stream %s (Ctrl+C to stop)", *subject, infrastructure.SettingsEventStream)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}
