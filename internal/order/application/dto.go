package application

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopping/internal/order/domain"
)

// OrderLineView 订单行视图，单价为下单时快照
type OrderLineView struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderView 订单视图
type OrderView struct {
	ID        uint            `json:"id"`
	Lines     []OrderLineView `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

func newOrderView(order *domain.Order, names map[uint]string) OrderView {
	lines := make([]OrderLineView, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, OrderLineView{
			ProductID: item.ProductID,
			Name:      names[item.ProductID],
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return OrderView{
		ID:        order.ID,
		Lines:     lines,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	}
}
