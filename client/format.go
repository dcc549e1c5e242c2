package client

import (
	"fmt"

	"github.com/marketfeed/itchreplay/itch"
)

// Format renders a single message as one human-readable line, in the style
// of a tail -f over the feed. Types without a dedicated case still get a
// sensible default line built from the common header.
func Format(msg itch.Message) string {
	switch m := msg.(type) {
	case itch.SystemEventMessage:
		return fmt.Sprintf("[S] system event code=%c", m.EventCode)
	case itch.AddOrderMessage:
		return fmt.Sprintf("[A] add order ref=%d %s %s x%d @ %s",
			m.OrderReferenceNumber, string(m.BuySellIndicator), m.Stock, m.Shares, m.Price)
	case itch.AddOrderMPIDMessage:
		return fmt.Sprintf("[F] add order ref=%d %s %s x%d @ %s mpid=%s",
			m.OrderReferenceNumber, string(m.BuySellIndicator), m.Stock, m.Shares, m.Price, m.Attribution)
	case itch.OrderExecutedMessage:
		return fmt.Sprintf("[E] order executed ref=%d x%d match=%d",
			m.OrderReferenceNumber, m.ExecutedShares, m.MatchNumber)
	case itch.OrderExecutedWithPriceMessage:
		return fmt.Sprintf("[C] order executed ref=%d x%d @ %s match=%d",
			m.OrderReferenceNumber, m.ExecutedShares, m.ExecutionPrice, m.MatchNumber)
	case itch.OrderCancelMessage:
		return fmt.Sprintf("[X] order cancel ref=%d x%d", m.OrderReferenceNumber, m.CanceledShares)
	case itch.OrderDeleteMessage:
		return fmt.Sprintf("[D] order delete ref=%d", m.OrderReferenceNumber)
	case itch.OrderReplaceMessage:
		return fmt.Sprintf("[U] order replace old=%d new=%d x%d @ %s",
			m.OriginalOrderReferenceNumber, m.NewOrderReferenceNumber, m.Shares, m.Price)
	case itch.TradeMessage:
		return fmt.Sprintf("[P] trade %s x%d @ %s match=%d", m.Stock, m.Shares, m.Price, m.MatchNumber)
	case itch.CrossTradeMessage:
		return fmt.Sprintf("[Q] cross trade %s x%d @ %s match=%d", m.Stock, m.Shares, m.CrossPrice, m.MatchNumber)
	case itch.BrokenTradeMessage:
		return fmt.Sprintf("[B] broken trade match=%d", m.MatchNumber)
	case itch.StockDirectoryMessage:
		return fmt.Sprintf("[R] stock directory %s", m.Stock)
	case itch.StockTradingActionMessage:
		return fmt.Sprintf("[H] trading action %s state=%c reason=%s", m.Stock, m.TradingState, m.Reason)
	case itch.UnknownMessage:
		return fmt.Sprintf("[?] unknown type 0x%02x (%d bytes)", m.TypeByte, len(m.Data))
	default:
		h := msg.Head()
		return fmt.Sprintf("[%c] %s locate=%d ts=%d", byte(msg.Kind()), itch.Name(byte(msg.Kind())), h.StockLocate, h.Timestamp)
	}
}
