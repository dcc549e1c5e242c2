package itch

// Framed is the unit the Framer emits: the raw byte slice of exactly the
// declared length for its type, plus the decoded timestamp when one is
// available (spec.md §3 "Framed Message"). Messages shorter than 11 bytes
// have no embedded timestamp; none of the table entries are currently that
// short (minimum length is 12), but HasTimestamp keeps the Pacer's
// inherit-previous-timestamp rule meaningful if that ever changes.
type Framed struct {
	Type         byte
	Raw          []byte
	Timestamp    uint64
	HasTimestamp bool
}

// Decode decodes f.Raw into a typed Message.
func (f Framed) Decode() (Message, error) {
	return Decode(f.Raw)
}
