package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// WishlistRepository 心愿单仓储接口
type WishlistRepository interface {
	// Create 创建空心愿单
	Create(ctx context.Context) (*Wishlist, error)
	// Get 按 ID 读取心愿单及其条目
	Get(ctx context.Context, id uint) (*Wishlist, error)
	// AddItem 收藏商品，重复收藏不报错也不产生重复条目
	AddItem(ctx context.Context, wishlistID, productID uint) error
	// RemoveItem 取消收藏，商品不在单内时为空操作
	RemoveItem(ctx context.Context, wishlistID, productID uint) error
	// RemoveProductFromAll 从所有心愿单移除指定商品
	RemoveProductFromAll(ctx context.Context, productID uint) error
}

// ProductSummary 心愿单视角的商品摘要
type ProductSummary struct {
	ID    uint
	Name  string
	Price decimal.Decimal
	Stock int
}

// ProductReader 商品读取端口
type ProductReader interface {
	GetProduct(ctx context.Context, id uint) (ProductSummary, error)
}
