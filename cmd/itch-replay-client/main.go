// Command itch-replay-client connects to an itch-replay-server and prints
// either a running tail of decoded messages or a final statistics summary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/marketfeed/itchreplay/client"
	"github.com/marketfeed/itchreplay/itch"
)

func main() {
	var (
		addr = flag.String("addr", "localhost:9999", "server address")
		tail = flag.Bool("tail", false, "print each decoded message as it arrives, instead of only a final summary")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	c, err := client.Dial(*addr)
	if err != nil {
		log.Fatalf("itch-replay-client: %v", err)
	}
	defer c.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-interrupt
		log.Println("itch-replay-client: closing connection")
		c.Close()
	}()

	var onMessage func(itch.Message)
	if *tail {
		onMessage = func(msg itch.Message) {
			fmt.Println(client.Format(msg))
		}
	}

	if err := c.Run(onMessage); err != nil {
		log.Printf("itch-replay-client: %v\n", err)
	}

	fmt.Print(c.Stats().Report())
}
