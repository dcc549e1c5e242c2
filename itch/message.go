package itch

import "github.com/pkg/errors"

// ErrShortMessage is returned by Decode when the supplied buffer is shorter
// than the length the type table declares for its first byte. The Framer
// never triggers this path (it only hands Decode buffers it has already
// sized correctly); Decode checks anyway because it is also used directly
// by client code against externally supplied buffers.
var ErrShortMessage = errors.New("itch: message shorter than declared length")

// ErrUnknownType is returned by Decode for a type byte absent from the
// table. The Framer handles this case itself via its resync policy and
// never calls Decode with an unknown type; this exists for direct callers.
var ErrUnknownType = errors.New("itch: unknown message type")

// Header is the 11-byte common header shared by every defined message.
type Header struct {
	Type           Type
	StockLocate    uint16
	TrackingNumber uint16
	Timestamp      uint64
}

func decodeHeader(b []byte) Header {
	return Header{
		Type:           Type(b[0]),
		StockLocate:    Uint16(b[1:3]),
		TrackingNumber: Uint16(b[3:5]),
		Timestamp:      Timestamp(b[5:11]),
	}
}

// Message is the tagged-union contract every decoded ITCH message satisfies.
// Decoding is exhaustive on Kind(): a switch over Decode's return value
// covers every table entry plus Unknown, with no hidden fallback branch.
type Message interface {
	Kind() Type
	Head() Header
}

// SystemEventMessage is the 'S' message.
type SystemEventMessage struct {
	Header
	EventCode byte
}

func (m SystemEventMessage) Kind() Type  { return TypeSystemEvent }
func (m SystemEventMessage) Head() Header { return m.Header }

// StockDirectoryMessage is the 'R' message.
type StockDirectoryMessage struct {
	Header
	Stock                       string
	MarketCategory              byte
	FinancialStatusIndicator    byte
	RoundLotSize                uint32
	RoundLotsOnly               byte
	IssueClassification         byte
	IssueSubType                string
	Authenticity                byte
	ShortSaleThresholdIndicator byte
	IPOFlag                     byte
	LULDReferencePriceTier      byte
	ETPFlag                     byte
	ETPLeverageFactor           uint32
	InverseIndicator            byte
}

func (m StockDirectoryMessage) Kind() Type  { return TypeStockDirectory }
func (m StockDirectoryMessage) Head() Header { return m.Header }

// StockTradingActionMessage is the 'H' message.
type StockTradingActionMessage struct {
	Header
	Stock        string
	TradingState byte
	Reserved     byte
	Reason       string
}

func (m StockTradingActionMessage) Kind() Type  { return TypeStockTradingAction }
func (m StockTradingActionMessage) Head() Header { return m.Header }

// RegSHORestrictionMessage is the 'Y' message.
type RegSHORestrictionMessage struct {
	Header
	Stock        string
	RegSHOAction byte
}

func (m RegSHORestrictionMessage) Kind() Type  { return TypeRegSHORestriction }
func (m RegSHORestrictionMessage) Head() Header { return m.Header }

// MarketParticipantPositionMessage is the 'L' message.
type MarketParticipantPositionMessage struct {
	Header
	MPID                   string
	Stock                   string
	PrimaryMarketMaker      byte
	MarketMakerMode         byte
	MarketParticipantState  byte
}

func (m MarketParticipantPositionMessage) Kind() Type  { return TypeMarketParticipantPosition }
func (m MarketParticipantPositionMessage) Head() Header { return m.Header }

// MWCBDeclineLevelMessage is the 'V' message.
type MWCBDeclineLevelMessage struct {
	Header
	Level1, Level2, Level3 uint64
}

func (m MWCBDeclineLevelMessage) Kind() Type  { return TypeMWCBDeclineLevel }
func (m MWCBDeclineLevelMessage) Head() Header { return m.Header }

// MWCBStatusMessage is the 'W' message.
type MWCBStatusMessage struct {
	Header
	BreachedLevel byte
}

func (m MWCBStatusMessage) Kind() Type  { return TypeMWCBStatus }
func (m MWCBStatusMessage) Head() Header { return m.Header }

// IPOQuotingPeriodUpdateMessage is the 'K' message.
type IPOQuotingPeriodUpdateMessage struct {
	Header
	Stock               string
	IPOReleaseTime      uint32
	IPOReleaseQualifier byte
	IPOPrice            Price
}

func (m IPOQuotingPeriodUpdateMessage) Kind() Type  { return TypeIPOQuotingPeriodUpdate }
func (m IPOQuotingPeriodUpdateMessage) Head() Header { return m.Header }

// AddOrderMessage is the 'A' message.
type AddOrderMessage struct {
	Header
	OrderReferenceNumber uint64
	BuySellIndicator     byte
	Shares               uint32
	Stock                string
	Price                Price
}

func (m AddOrderMessage) Kind() Type  { return TypeAddOrderNoMPID }
func (m AddOrderMessage) Head() Header { return m.Header }

// AddOrderMPIDMessage is the 'F' message.
type AddOrderMPIDMessage struct {
	Header
	OrderReferenceNumber uint64
	BuySellIndicator     byte
	Shares               uint32
	Stock                string
	Price                Price
	Attribution          string
}

func (m AddOrderMPIDMessage) Kind() Type  { return TypeAddOrderMPID }
func (m AddOrderMPIDMessage) Head() Header { return m.Header }

// OrderExecutedMessage is the 'E' message.
type OrderExecutedMessage struct {
	Header
	OrderReferenceNumber uint64
	ExecutedShares       uint32
	MatchNumber          uint64
}

func (m OrderExecutedMessage) Kind() Type  { return TypeOrderExecuted }
func (m OrderExecutedMessage) Head() Header { return m.Header }

// OrderExecutedWithPriceMessage is the 'C' message.
type OrderExecutedWithPriceMessage struct {
	Header
	OrderReferenceNumber uint64
	ExecutedShares       uint32
	MatchNumber          uint64
	Printable            byte
	ExecutionPrice       Price
}

func (m OrderExecutedWithPriceMessage) Kind() Type  { return TypeOrderExecutedWithPrice }
func (m OrderExecutedWithPriceMessage) Head() Header { return m.Header }

// OrderCancelMessage is the 'X' message.
type OrderCancelMessage struct {
	Header
	OrderReferenceNumber uint64
	CanceledShares       uint32
}

func (m OrderCancelMessage) Kind() Type  { return TypeOrderCancel }
func (m OrderCancelMessage) Head() Header { return m.Header }

// OrderDeleteMessage is the 'D' message.
type OrderDeleteMessage struct {
	Header
	OrderReferenceNumber uint64
}

func (m OrderDeleteMessage) Kind() Type  { return TypeOrderDelete }
func (m OrderDeleteMessage) Head() Header { return m.Header }

// OrderReplaceMessage is the 'U' message.
type OrderReplaceMessage struct {
	Header
	OriginalOrderReferenceNumber uint64
	NewOrderReferenceNumber      uint64
	Shares                       uint32
	Price                        Price
}

func (m OrderReplaceMessage) Kind() Type  { return TypeOrderReplace }
func (m OrderReplaceMessage) Head() Header { return m.Header }

// TradeMessage is the 'P' message.
type TradeMessage struct {
	Header
	OrderReferenceNumber uint64
	BuySellIndicator     byte
	Shares               uint32
	Stock                string
	Price                Price
	MatchNumber          uint64
}

func (m TradeMessage) Kind() Type  { return TypeTrade }
func (m TradeMessage) Head() Header { return m.Header }

// CrossTradeMessage is the 'Q' message.
type CrossTradeMessage struct {
	Header
	Shares      uint64
	Stock       string
	CrossPrice  Price
	MatchNumber uint64
	CrossType   byte
}

func (m CrossTradeMessage) Kind() Type  { return TypeCrossTrade }
func (m CrossTradeMessage) Head() Header { return m.Header }

// BrokenTradeMessage is the 'B' message.
type BrokenTradeMessage struct {
	Header
	MatchNumber uint64
}

func (m BrokenTradeMessage) Kind() Type  { return TypeBrokenTrade }
func (m BrokenTradeMessage) Head() Header { return m.Header }

// NOIIMessage is the 'I' message.
type NOIIMessage struct {
	Header
	PairedShares            uint64
	ImbalanceShares         uint64
	ImbalanceDirection      byte
	Stock                   string
	FarPrice                Price
	NearPrice               Price
	CurrentReferencePrice   Price
	CrossType               byte
	PriceVariationIndicator byte
}

func (m NOIIMessage) Kind() Type  { return TypeNOII }
func (m NOIIMessage) Head() Header { return m.Header }

// RPIIMessage is the 'N' message.
type RPIIMessage struct {
	Header
	Stock        string
	InterestFlag byte
}

func (m RPIIMessage) Kind() Type  { return TypeRPII }
func (m RPIIMessage) Head() Header { return m.Header }

// UnknownMessage is the distinct unknown-type variant (spec.md §9 design
// note: "Unknown types are a distinct variant with the raw byte, not a
// fallback hidden branch").
type UnknownMessage struct {
	TypeByte byte
	Data     []byte
}

func (m UnknownMessage) Kind() Type   { return Type(m.TypeByte) }
func (m UnknownMessage) Head() Header { return Header{Type: Type(m.TypeByte)} }

// Decode decodes a single message from b, which must hold at least the
// number of bytes Lookup returns for b[0] (the Framer passes exactly that
// many). A shorter b yields ErrShortMessage; bytes beyond the declared
// length are ignored.
func Decode(b []byte) (Message, error) {
	if len(b) == 0 {
		return nil, ErrShortMessage
	}
	length, known := Lookup(b[0])
	if !known {
		return UnknownMessage{TypeByte: b[0], Data: b}, ErrUnknownType
	}
	if len(b) < length {
		return nil, ErrShortMessage
	}
	h := decodeHeader(b)

	switch Type(b[0]) {
	case TypeSystemEvent:
		return SystemEventMessage{Header: h, EventCode: b[11]}, nil
	case TypeStockDirectory:
		return StockDirectoryMessage{
			Header:                      h,
			Stock:                       ASCII(b[11:19]),
			MarketCategory:              b[19],
			FinancialStatusIndicator:    b[20],
			RoundLotSize:                Uint32(b[21:25]),
			RoundLotsOnly:               b[25],
			IssueClassification:         b[26],
			IssueSubType:                ASCII(b[27:29]),
			Authenticity:                b[29],
			ShortSaleThresholdIndicator: b[30],
			IPOFlag:                     b[31],
			LULDReferencePriceTier:      b[32],
			ETPFlag:                     b[33],
			ETPLeverageFactor:           Uint32(b[34:38]),
			InverseIndicator:            b[38],
		}, nil
	case TypeStockTradingAction:
		return StockTradingActionMessage{
			Header:       h,
			Stock:        ASCII(b[11:19]),
			TradingState: b[19],
			Reserved:     b[20],
			Reason:       ASCII(b[21:25]),
		}, nil
	case TypeRegSHORestriction:
		return RegSHORestrictionMessage{Header: h, Stock: ASCII(b[11:19]), RegSHOAction: b[19]}, nil
	case TypeMarketParticipantPosition:
		return MarketParticipantPositionMessage{
			Header:                 h,
			MPID:                   ASCII(b[11:15]),
			Stock:                  ASCII(b[15:23]),
			PrimaryMarketMaker:     b[23],
			MarketMakerMode:        b[24],
			MarketParticipantState: b[25],
		}, nil
	case TypeMWCBDeclineLevel:
		return MWCBDeclineLevelMessage{
			Header: h,
			Level1: Uint64(b[11:19]),
			Level2: Uint64(b[19:27]),
			Level3: Uint64(b[27:35]),
		}, nil
	case TypeMWCBStatus:
		return MWCBStatusMessage{Header: h, BreachedLevel: b[11]}, nil
	case TypeIPOQuotingPeriodUpdate:
		return IPOQuotingPeriodUpdateMessage{
			Header:              h,
			Stock:               ASCII(b[11:19]),
			IPOReleaseTime:      Uint32(b[19:23]),
			IPOReleaseQualifier: b[23],
			IPOPrice:            DecodePrice(b[24:28]),
		}, nil
	case TypeAddOrderNoMPID:
		return AddOrderMessage{
			Header:               h,
			OrderReferenceNumber: Uint64(b[11:19]),
			BuySellIndicator:     b[19],
			Shares:               Uint32(b[20:24]),
			Stock:                ASCII(b[24:32]),
			Price:                DecodePrice(b[32:36]),
		}, nil
	case TypeAddOrderMPID:
		return AddOrderMPIDMessage{
			Header:               h,
			OrderReferenceNumber: Uint64(b[11:19]),
			BuySellIndicator:     b[19],
			Shares:               Uint32(b[20:24]),
			Stock:                ASCII(b[24:32]),
			Price:                DecodePrice(b[32:36]),
			Attribution:          ASCII(b[36:40]),
		}, nil
	case TypeOrderExecuted:
		return OrderExecutedMessage{
			Header:               h,
			OrderReferenceNumber: Uint64(b[11:19]),
			ExecutedShares:       Uint32(b[19:23]),
			MatchNumber:          Uint64(b[23:31]),
		}, nil
	case TypeOrderExecutedWithPrice:
		return OrderExecutedWithPriceMessage{
			Header:               h,
			OrderReferenceNumber: Uint64(b[11:19]),
			ExecutedShares:       Uint32(b[19:23]),
			MatchNumber:          Uint64(b[23:31]),
			Printable:            b[31],
			ExecutionPrice:       DecodePrice(b[32:36]),
		}, nil
	case TypeOrderCancel:
		return OrderCancelMessage{
			Header:               h,
			OrderReferenceNumber: Uint64(b[11:19]),
			CanceledShares:       Uint32(b[19:23]),
		}, nil
	case TypeOrderDelete:
		return OrderDeleteMessage{Header: h, OrderReferenceNumber: Uint64(b[11:19])}, nil
	case TypeOrderReplace:
		return OrderReplaceMessage{
			Header:                       h,
			OriginalOrderReferenceNumber: Uint64(b[11:19]),
			NewOrderReferenceNumber:      Uint64(b[19:27]),
			Shares:                       Uint32(b[27:31]),
			Price:                        DecodePrice(b[31:35]),
		}, nil
	case TypeTrade:
		return TradeMessage{
			Header:               h,
			OrderReferenceNumber: Uint64(b[11:19]),
			BuySellIndicator:     b[19],
			Shares:               Uint32(b[20:24]),
			Stock:                ASCII(b[24:32]),
			Price:                DecodePrice(b[32:36]),
			MatchNumber:          Uint64(b[36:44]),
		}, nil
	case TypeCrossTrade:
		return CrossTradeMessage{
			Header:      h,
			Shares:      Uint64(b[11:19]),
			Stock:       ASCII(b[19:27]),
			CrossPrice:  DecodePrice(b[27:31]),
			MatchNumber: Uint64(b[31:39]),
			CrossType:   b[39],
		}, nil
	case TypeBrokenTrade:
		return BrokenTradeMessage{Header: h, MatchNumber: Uint64(b[11:19])}, nil
	case TypeNOII:
		return NOIIMessage{
			Header:                  h,
			PairedShares:            Uint64(b[11:19]),
			ImbalanceShares:         Uint64(b[19:27]),
			ImbalanceDirection:      b[27],
			Stock:                   ASCII(b[28:36]),
			FarPrice:                DecodePrice(b[36:40]),
			NearPrice:               DecodePrice(b[40:44]),
			CurrentReferencePrice:   DecodePrice(b[44:48]),
			CrossType:               b[48],
			PriceVariationIndicator: b[49],
		}, nil
	case TypeRPII:
		return RPIIMessage{Header: h, Stock: ASCII(b[11:19]), InterestFlag: b[19]}, nil
	default:
		// Lookup already classified b[0] as known, so this is unreachable.
		return UnknownMessage{TypeByte: b[0], Data: b}, ErrUnknownType
	}
}
