package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	// OrderItems maps product id to requested quantity.
	OrderItems map[int64]int   `json:"orderItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     Status          `json:"status"` // lihat status.go
	CreatedAt  time.Time       `json:"createdAt"`
}
