package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent 结算成功后发布
type OrderCreatedEvent struct {
	OrderID   uint            `json:"order_id"`
	CartID    uint            `json:"cart_id"`
	Total     decimal.Decimal `json:"total"`
	LineCount int             `json:"line_count"`
	CreatedAt time.Time       `json:"created_at"`
}
