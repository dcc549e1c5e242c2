package itch

import "strings"

// Primitive decoders. All of them assume the caller has already validated
// that the supplied slice is long enough (spec.md §4.1): the Framer only
// invokes these after a message's declared length has been fully buffered.

// Uint16 decodes a 2-byte big-endian unsigned integer.
func Uint16(b []byte) uint16 {
	_ = b[1]
	return uint16(b[0])<<8 | uint16(b[1])
}

// Uint32 decodes a 4-byte big-endian unsigned integer.
func Uint32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// Uint64 decodes an 8-byte big-endian unsigned integer.
func Uint64(b []byte) uint64 {
	_ = b[7]
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// Timestamp decodes the 6-byte big-endian nanosecond-of-day field shared by
// every defined message's common header. Per spec.md §4.1, the six bytes are
// the most-significant 48 bits of a 64-bit big-endian number whose low 16
// bits are implicitly zero.
func Timestamp(b []byte) uint64 {
	_ = b[5]
	var v uint64
	for i := 0; i < 6; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// ASCII right-trims trailing space bytes from a fixed-width field and
// returns the logical string. Trimming is right-only: interior spaces are
// preserved. An all-space field decodes to the empty string.
func ASCII(b []byte) string {
	return strings.TrimRight(string(b), " ")
}

// Price is a fixed-point price with an implicit divisor of 10,000 (four
// fractional decimal digits). Arithmetic and comparisons on Price stay in
// the integer domain; String is the only place this package converts to a
// decimal representation, and that conversion is for display only.
type Price uint32

// DecodePrice decodes a 4-byte big-endian fixed-point price field.
func DecodePrice(b []byte) Price {
	return Price(Uint32(b))
}

// String renders the price as a decimal with four fractional digits, e.g.
// Price(1500000).String() == "150.0000".
func (p Price) String() string {
	whole := uint32(p) / 10000
	frac := uint32(p) % 10000
	digits := [4]byte{}
	for i := 3; i >= 0; i-- {
		digits[i] = byte('0' + frac%10)
		frac /= 10
	}
	return itoa(whole) + "." + string(digits[:])
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
