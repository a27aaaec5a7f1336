package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/shopping/internal/order/domain"
	"github.com/wyfcoding/shopping/pkg/db"
	"github.com/wyfcoding/shopping/pkg/outbox"
	"gorm.io/gorm"
)

// checkoutTx 在单个数据库事务内完成结算的全部写入：
// 带守卫条件的库存扣减、订单落库、清空购物车行、写出站消息。
type checkoutTx struct {
	db     *db.DB
	outbox *outbox.Manager
}

// NewCheckoutTx 创建结算事务实例
func NewCheckoutTx(database *db.DB, manager *outbox.Manager) domain.CheckoutTx {
	return &checkoutTx{db: database, outbox: manager}
}

func (t *checkoutTx) Commit(ctx context.Context, order *domain.Order, cartID uint) error {
	return t.db.WithTx(ctx, func(tx *gorm.DB) error {
		for _, item := range order.Items {
			// 守卫条件写在 WHERE 里，并发扣减不会把库存扣成负数
			res := tx.Table("products").
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %d: %w", item.ProductID, domain.ErrInsufficientStock)
			}
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM cart_items WHERE cart_id = ?", cartID).Error; err != nil {
			return err
		}

		event := domain.OrderCreatedEvent{
			OrderID:   order.ID,
			CartID:    cartID,
			Total:     order.Total,
			LineCount: len(order.Items),
			CreatedAt: time.Now(),
		}
		return t.outbox.PublishInTx(ctx, tx, "order.created", fmt.Sprintf("%d", order.ID), event)
	})
}
