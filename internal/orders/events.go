package orders

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "OrderPlaced"

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // EventOrderPlaced
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"` // e.g. "order-service"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type ItemQty struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

type OrderPlacedPayload struct {
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	Items      []ItemQty       `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PlacedPayload flattens o's items in product id order.
func PlacedPayload(o Order) OrderPlacedPayload {
	items := make([]ItemQty, 0, len(o.OrderItems))
	for _, id := range sortedProductIDs(o.OrderItems) {
		items = append(items, ItemQty{ProductID: id, Qty: o.OrderItems[id]})
	}
	return OrderPlacedPayload{OrderID: o.ID, UserID: o.UserID, Items: items, TotalPrice: o.TotalPrice}
}
