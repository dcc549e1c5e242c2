// Command itch-sample-data writes a synthetic ITCH 5.0 byte stream to a
// file, for exercising itch-replay-server without a real feed capture.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/marketfeed/itchreplay/sampledata"
)

func main() {
	var (
		out       = flag.String("out", "data/sample.itch", "output path")
		symbols   = flag.String("symbols", strings.Join(sampledata.DefaultConfig.Symbols, ","), "comma-separated symbol list")
		orders    = flag.Int("orders-per-symbol", sampledata.DefaultConfig.OrdersPerSymbol, "buy/sell order pairs per symbol")
		basePrice = flag.Uint("base-price", uint(sampledata.DefaultConfig.BasePrice), "starting price, in ten-thousandths of a dollar")
	)
	flag.Parse()

	cfg := sampledata.DefaultConfig
	cfg.Symbols = strings.Split(*symbols, ",")
	cfg.OrdersPerSymbol = *orders
	cfg.BasePrice = uint32(*basePrice)

	b := sampledata.Generate(cfg)

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("itch-sample-data: %v", err)
		}
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		log.Fatalf("itch-sample-data: %v", err)
	}

	fmt.Printf("wrote %d bytes to %s\n", len(b), *out)
}
