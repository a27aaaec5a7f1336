// Package application 订单应用服务
package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopping/internal/order/domain"
	"github.com/wyfcoding/shopping/pkg/keylock"
	"github.com/wyfcoding/shopping/pkg/logger"
)

// CheckoutService 结算服务。
// 与购物车写服务共享同一把键锁，结算期间购物车内容不会被并发修改。
type CheckoutService struct {
	carts    domain.CartReader
	products domain.ProductReader
	tx       domain.CheckoutTx
	locks    *keylock.KeyLock
}

// NewCheckoutService 创建结算服务实例
func NewCheckoutService(
	carts domain.CartReader,
	products domain.ProductReader,
	tx domain.CheckoutTx,
	locks *keylock.KeyLock,
) *CheckoutService {
	return &CheckoutService{carts: carts, products: products, tx: tx, locks: locks}
}

// Checkout 结算购物车：按当前商品价格生成快照订单，
// 库存扣减、订单落库、清空购物车在同一事务内完成。
func (s *CheckoutService) Checkout(ctx context.Context, cartID uint) (OrderView, error) {
	unlock := s.locks.Lock(cartID)
	defer unlock()

	snap, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return OrderView{}, err
	}
	if len(snap.Lines) == 0 {
		return OrderView{}, domain.ErrEmptyCart
	}

	order := &domain.Order{Total: decimal.Zero}
	names := make(map[uint]string, len(snap.Lines))
	for _, line := range snap.Lines {
		product, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return OrderView{}, err
		}
		names[product.ID] = product.Name
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		order.Total = order.Total.Add(lineTotal)
	}

	if err := s.tx.Commit(ctx, order, cartID); err != nil {
		return OrderView{}, err
	}

	logger.Info(ctx, "checkout completed",
		"order_id", order.ID,
		"cart_id", cartID,
		"total", order.Total.String(),
	)
	return newOrderView(order, names), nil
}
