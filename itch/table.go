// Package itch implements the data model for NASDAQ TotalView-ITCH 5.0
// messages: the type-indexed length table, the primitive big-endian and
// fixed-point decoders, and the message value types. The package performs
// no I/O; callers (framer, client) hand it buffers that have already been
// sized according to Lookup.
package itch

// Type identifies a single ITCH message by its 1-byte ASCII tag.
type Type byte

// Canonical message types, per spec.md §3.
const (
	TypeSystemEvent              Type = 'S'
	TypeStockDirectory            Type = 'R'
	TypeStockTradingAction         Type = 'H'
	TypeRegSHORestriction          Type = 'Y'
	TypeMarketParticipantPosition  Type = 'L'
	TypeMWCBDeclineLevel           Type = 'V'
	TypeMWCBStatus                 Type = 'W'
	TypeIPOQuotingPeriodUpdate     Type = 'K'
	TypeAddOrderNoMPID             Type = 'A'
	TypeAddOrderMPID               Type = 'F'
	TypeOrderExecuted               Type = 'E'
	TypeOrderExecutedWithPrice      Type = 'C'
	TypeOrderCancel                 Type = 'X'
	TypeOrderDelete                 Type = 'D'
	TypeOrderReplace                Type = 'U'
	TypeTrade                       Type = 'P'
	TypeCrossTrade                  Type = 'Q'
	TypeBrokenTrade                 Type = 'B'
	TypeNOII                        Type = 'I'
	TypeRPII                        Type = 'N'
)

// names gives each type a human-readable label, used by client stats reporting.
var names = map[Type]string{
	TypeSystemEvent:             "System Event",
	TypeStockDirectory:          "Stock Directory",
	TypeStockTradingAction:      "Stock Trading Action",
	TypeRegSHORestriction:       "Reg SHO Restriction",
	TypeMarketParticipantPosition: "Market Participant Position",
	TypeMWCBDeclineLevel:        "MWCB Decline Level",
	TypeMWCBStatus:              "MWCB Status",
	TypeIPOQuotingPeriodUpdate:  "IPO Quoting Period Update",
	TypeAddOrderNoMPID:          "Add Order (No MPID)",
	TypeAddOrderMPID:            "Add Order (MPID)",
	TypeOrderExecuted:           "Order Executed",
	TypeOrderExecutedWithPrice:  "Order Executed With Price",
	TypeOrderCancel:             "Order Cancel",
	TypeOrderDelete:             "Order Delete",
	TypeOrderReplace:            "Order Replace",
	TypeTrade:                   "Trade (Non-Cross)",
	TypeCrossTrade:              "Cross Trade",
	TypeBrokenTrade:             "Broken Trade",
	TypeNOII:                    "NOII",
	TypeRPII:                    "RPII",
}

// lengths is the total message length (including the 1-byte type prefix)
// for every defined ITCH 5.0 message type. This is the table referenced
// throughout spec.md §3-4: the lookup is total, and any byte not present
// here is an unknown-type event with length 0.
var lengths = map[Type]int{
	TypeSystemEvent:              12,
	TypeStockDirectory:           39,
	TypeStockTradingAction:       25,
	TypeRegSHORestriction:        20,
	TypeMarketParticipantPosition: 26,
	TypeMWCBDeclineLevel:         35,
	TypeMWCBStatus:               12,
	TypeIPOQuotingPeriodUpdate:   28,
	TypeAddOrderNoMPID:           36,
	TypeAddOrderMPID:             40,
	TypeOrderExecuted:            31,
	TypeOrderExecutedWithPrice:   36,
	TypeOrderCancel:              23,
	TypeOrderDelete:              19,
	TypeOrderReplace:             35,
	TypeTrade:                    44,
	TypeCrossTrade:               40,
	TypeBrokenTrade:              19,
	TypeNOII:                     50,
	TypeRPII:                     20,
}

// Lookup returns the total on-wire length for t, and whether t is a
// recognised message type. A false second result means t is an unknown-type
// byte per spec.md I-invariant I2: the caller must not emit a framed
// message for it.
func Lookup(t byte) (length int, known bool) {
	l, ok := lengths[Type(t)]
	return l, ok
}

// Name returns a human-readable label for t, or "" if t is unknown.
func Name(t byte) string {
	return names[Type(t)]
}

// KnownTypes returns every recognised type byte, in table order, for
// callers that iterate the whole table.
func KnownTypes() []Type {
	order := make([]Type, 0, len(lengths))
	for _, t := range []Type{
		TypeSystemEvent, TypeStockDirectory, TypeStockTradingAction, TypeRegSHORestriction,
		TypeMarketParticipantPosition, TypeMWCBDeclineLevel, TypeMWCBStatus, TypeIPOQuotingPeriodUpdate,
		TypeAddOrderNoMPID, TypeAddOrderMPID, TypeOrderExecuted, TypeOrderExecutedWithPrice,
		TypeOrderCancel, TypeOrderDelete, TypeOrderReplace, TypeTrade, TypeCrossTrade,
		TypeBrokenTrade, TypeNOII, TypeRPII,
	} {
		order = append(order, t)
	}
	return order
}
