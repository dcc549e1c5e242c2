// Package sampledata synthesises a small, well-formed ITCH 5.0 byte stream
// for local testing, grounded on generate_sample_itch.c: a System Event
// start-of-day message, a Stock Directory entry per symbol, then a stream
// of alternating buy/sell Add Order messages with a System Event
// end-of-day message to close it out. This is out of core replay scope
// (spec.md §1) but useful for exercising the rest of the pipeline without a
// real feed capture.
package sampledata

import (
	"bytes"

	"github.com/marketfeed/itchreplay/itch"
)

// Config controls the synthesised stream.
type Config struct {
	// Symbols are assigned ascending stock-locate codes starting at 1.
	Symbols []string
	// OrdersPerSymbol is the number of buy/sell Add Order pairs emitted
	// per symbol.
	OrdersPerSymbol int
	// BasePrice is the starting price, in the Price fixed-point domain
	// (e.g. 1500000 == $150.0000).
	BasePrice uint32
	// StartTimestamp is nanoseconds since midnight for the first message.
	StartTimestamp uint64
	// OrderInterval is the feed-clock gap, in nanoseconds, between orders.
	OrderInterval uint64
}

// DefaultConfig matches generate_sample_itch.c's original fixture.
var DefaultConfig = Config{
	Symbols:         []string{"AAPL", "TSLA"},
	OrdersPerSymbol: 100,
	BasePrice:       1500000,
	StartTimestamp:  34200000000000, // 09:30:00
	OrderInterval:   50000000,       // 50ms
}

// Generate returns a synthetic ITCH byte stream built per cfg.
func Generate(cfg Config) []byte {
	var buf bytes.Buffer
	var tracking uint16
	ts := cfg.StartTimestamp

	writeHeader := func(typ byte, locate uint16, length int) []byte {
		b := make([]byte, length)
		b[0] = typ
		putUint16(b[1:3], locate)
		putUint16(b[3:5], tracking)
		tracking++
		putTimestamp(b[5:11], ts)
		return b
	}

	// Start of Messages.
	start := writeHeader('S', 1, 12)
	start[11] = 'O'
	buf.Write(start)
	ts += 1000000

	for i, sym := range cfg.Symbols {
		locate := uint16(i + 1)
		dir := writeHeader('R', locate, 39)
		putStock(dir[11:19], sym)
		dir[19] = 'Q' // NASDAQ
		dir[20] = 'N' // Normal
		putUint32(dir[21:25], 100)
		dir[25] = 'Y'
		dir[26] = 'P'
		dir[29] = 'P'
		dir[30] = 'N'
		dir[31] = ' '
		dir[32] = '1'
		dir[33] = 'N'
		putUint32(dir[34:38], 1)
		dir[38] = 'N'
		buf.Write(dir)
		ts += 1000000
	}

	var orderRef uint64 = 1000000
	for i, sym := range cfg.Symbols {
		locate := uint16(i + 1)
		for n := 0; n < cfg.OrdersPerSymbol; n++ {
			buyPrice := cfg.BasePrice + uint32(n*100)
			buy := writeHeader('A', locate, 36)
			putUint64(buy[11:19], orderRef)
			buy[19] = 'B'
			putUint32(buy[20:24], uint32(100+n*10))
			putStock(buy[24:32], sym)
			putUint32(buy[32:36], buyPrice)
			buf.Write(buy)
			ts += cfg.OrderInterval
			orderRef++

			sellPrice := buyPrice + 100
			sell := writeHeader('A', locate, 36)
			putUint64(sell[11:19], orderRef)
			sell[19] = 'S'
			putUint32(sell[20:24], uint32(100+n*10))
			putStock(sell[24:32], sym)
			putUint32(sell[32:36], sellPrice)
			buf.Write(sell)
			ts += cfg.OrderInterval
			orderRef++

			if n%5 == 0 {
				exec := writeHeader('E', locate, 31)
				putUint64(exec[11:19], orderRef-2)
				putUint32(exec[19:23], 50)
				putUint64(exec[23:31], uint64(n+1))
				buf.Write(exec)
				ts += cfg.OrderInterval
			}
		}
	}

	end := writeHeader('S', 1, 12)
	end[11] = 'C'
	buf.Write(end)

	return buf.Bytes()
}

func putUint16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func putUint32(b []byte, v uint32) {
	for i := 3; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

func putUint64(b []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

func putTimestamp(b []byte, ts uint64) {
	for i := 5; i >= 0; i-- {
		b[i] = byte(ts)
		ts >>= 8
	}
}

func putStock(b []byte, sym string) {
	for i := range b {
		b[i] = ' '
	}
	copy(b, sym)
}

// Verify is a convenience used by tests: it decodes every message in b with
// itch.Lookup/itch.Decode and reports how many bytes it consumed, to catch
// generator/codec drift early.
func Verify(b []byte) (count int, err error) {
	for len(b) > 0 {
		length, known := itch.Lookup(b[0])
		if !known {
			return count, itch.ErrUnknownType
		}
		if len(b) < length {
			return count, itch.ErrShortMessage
		}
		if _, err := itch.Decode(b[:length]); err != nil {
			return count, err
		}
		b = b[length:]
		count++
	}
	return count, nil
}
