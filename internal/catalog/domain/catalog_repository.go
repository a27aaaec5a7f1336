package domain

import "context"

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// Save 保存或更新商品
	Save(ctx context.Context, product *Product) error
	// GetByID 根据 ID 获取商品（包含已下架商品，供历史订单展示）
	GetByID(ctx context.Context, id uint) (*Product, error)
	// ListActive 分页列出在售商品
	ListActive(ctx context.Context, offset, limit int) ([]*Product, int64, error)
	// SearchActive 在售商品的名称/描述子串搜索（大小写不敏感）
	SearchActive(ctx context.Context, term string) ([]*Product, error)
	// AdjustStock 原子调整库存，结果为负时返回 ErrInsufficientStock
	AdjustStock(ctx context.Context, id uint, delta int) error
	// Delete 物理删除商品
	Delete(ctx context.Context, id uint) error
}

// 删除商品时的跨上下文协作方：
// 购物车与心愿单中的引用先行清理，历史订单决定删除方式。

// CartScrubber 从所有购物车中移除商品行
type CartScrubber interface {
	RemoveProductFromCarts(ctx context.Context, productID uint) error
}

// WishlistScrubber 从所有心愿单中移除商品引用
type WishlistScrubber interface {
	RemoveProductFromWishlists(ctx context.Context, productID uint) error
}

// OrderReferenceChecker 检查商品是否被任一历史订单行引用
type OrderReferenceChecker interface {
	HasProduct(ctx context.Context, productID uint) (bool, error)
}

// EventPublisher 事件发布者接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
