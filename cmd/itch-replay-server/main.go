// Command itch-replay-server streams a historical ITCH 5.0 capture to any
// number of connected TCP clients at its original (or scaled) cadence.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/marketfeed/itchreplay/acceptor"
	"github.com/marketfeed/itchreplay/broadcast"
	"github.com/marketfeed/itchreplay/framer"
	"github.com/marketfeed/itchreplay/pacer"
)

func main() {
	var (
		port      = flag.Int("port", 9999, "listen port")
		speed     = flag.Float64("speed", 1.0, "playback speed multiplier (0 = as fast as possible)")
		capacity  = flag.Int("max-clients", broadcast.DefaultConfig.Capacity, "maximum concurrent subscribers")
		warmUp    = flag.Duration("warm-up", 2*time.Second, "delay before replay starts, to let early clients attach")
		verbose   = flag.Bool("v", false, "enable diagnostic trace logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <itch_file[.gz]>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	pacerSpeed := *speed
	if pacerSpeed == 0 {
		pacerSpeed = pacer.Unpaced
	}

	progress := &progressCounter{}
	base := pacer.NoOpTrace
	if *verbose {
		base = pacer.DefaultTrace
	}
	pacerTrace := &pacer.Trace{
		Sleep:  base.Sleep,
		CapHit: base.CapHit,
		Egress: func(ts uint64) {
			base.Egress(ts)
			progress.observe()
		},
	}
	pc, err := pacer.New(pacer.Config{Speed: pacerSpeed}, pacer.WithTrace(pacerTrace))
	if err != nil {
		log.Fatalf("itch-replay-server: %v", err)
	}

	table := broadcast.New(broadcast.Config{Capacity: *capacity}, broadcastTraceOption(*verbose))

	addr := fmt.Sprintf(":%d", *port)
	acc, err := acceptor.Listen(addr, table, acceptorTraceOption(*verbose))
	if err != nil {
		log.Fatalf("itch-replay-server: %v", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		log.Println("itch-replay-server: shutting down")
		stopping.Store(true)
		acc.Stop()
		table.Shutdown()
	}()

	go func() {
		if err := acc.Serve(); err != nil {
			log.Printf("itch-replay-server: accept loop: %v\n", err)
		}
	}()

	log.Printf("itch-replay-server: listening on %s (speed=%.2fx, capacity=%d)\n", addr, *speed, *capacity)
	if *warmUp > 0 {
		log.Printf("itch-replay-server: warming up for %s\n", *warmUp)
		time.Sleep(*warmUp)
	}

	if err := replay(path, pc, table, progress, *verbose); err != nil {
		log.Fatalf("itch-replay-server: %v", err)
	}

	log.Printf("itch-replay-server: replay complete, sent %d messages (%.2f MB)\n",
		progress.count, float64(progress.bytes)/1048576.0)
}

// progressCounter implements the per-100,000-message progress line from
// itch_replay_server.c, driven off the Pacer's Egress hook rather than a
// counter threaded through the replay loop by hand.
type progressCounter struct {
	count uint64
	bytes uint64
}

func (p *progressCounter) observe() {
	p.count++
	if p.count%100000 == 0 {
		log.Printf("itch-replay-server: sent %d messages (%.2f MB)\n", p.count, float64(p.bytes)/1048576.0)
	}
}

// stopping is the shutdown flag set by the signal handler; the replay loop
// checks it before framing each message.
var stopping atomic.Bool

func replay(path string, pc *pacer.Pacer, table *broadcast.Table, progress *progressCounter, verbose bool) error {
	src, err := framer.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	var frOpts []framer.Option
	if verbose {
		frOpts = append(frOpts, framer.WithTrace(framer.DefaultTrace))
	}
	fr := framer.New(src, frOpts...)

	for !stopping.Load() && fr.Scan() {
		f := fr.Message()
		progress.bytes += uint64(len(f.Raw))
		err := pc.Emit(f.Timestamp, f.HasTimestamp, func() error {
			table.Deliver(f.Raw)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return fr.Err()
}

func broadcastTraceOption(verbose bool) broadcast.Option {
	if !verbose {
		return broadcast.WithTrace(broadcast.NoOpTrace)
	}
	return broadcast.WithTrace(broadcast.DefaultTrace)
}

func acceptorTraceOption(verbose bool) acceptor.Option {
	if !verbose {
		return acceptor.WithTrace(acceptor.NoOpTrace)
	}
	return acceptor.WithTrace(acceptor.DefaultTrace)
}
