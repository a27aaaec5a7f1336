// Package adapter 提供订单上下文对购物车、目录上下文的只读适配
package adapter

import (
	"context"

	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	"github.com/wyfcoding/shopping/internal/order/domain"
)

// CartReader 将购物车仓储适配为结算侧的购物车读取端口
type CartReader struct {
	carts cartdomain.CartRepository
}

// NewCartReader 创建购物车读取适配器
func NewCartReader(carts cartdomain.CartRepository) *CartReader {
	return &CartReader{carts: carts}
}

// GetCart 读取购物车快照
func (r *CartReader) GetCart(ctx context.Context, cartID uint) (domain.CartSnapshot, error) {
	cart, err := r.carts.Get(ctx, cartID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	snap := domain.CartSnapshot{ID: cart.ID}
	for _, item := range cart.Items {
		snap.Lines = append(snap.Lines, domain.CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return snap, nil
}
