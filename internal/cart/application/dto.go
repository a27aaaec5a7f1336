package application

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopping/internal/cart/domain"
)

// CartLineView 购物车行视图，商品字段实时解析
type CartLineView struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartView 购物车视图
type CartView struct {
	ID    uint            `json:"id"`
	Lines []CartLineView  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// newCartView 由购物车与已解析的商品快照构建视图。
// 总额按当前商品价格计算，不做快照，价格变动会反映到后续读取。
func newCartView(cart *domain.Cart, products map[uint]domain.ProductInfo) CartView {
	view := CartView{
		ID:    cart.ID,
		Lines: make([]CartLineView, 0, len(cart.Items)),
		Total: decimal.Zero,
	}
	for _, item := range cart.Items {
		p := products[item.ProductID]
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Lines = append(view.Lines, CartLineView{
			ProductID: item.ProductID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view
}
