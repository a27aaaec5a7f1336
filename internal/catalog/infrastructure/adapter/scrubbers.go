// Package adapter 提供目录上下文删除级联所需的跨上下文适配
package adapter

import (
	"context"

	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	orderdomain "github.com/wyfcoding/shopping/internal/order/domain"
	wishlistdomain "github.com/wyfcoding/shopping/internal/wishlist/domain"
)

// CartScrubber 删除商品时从所有购物车移除对应行
type CartScrubber struct {
	carts cartdomain.CartRepository
}

// NewCartScrubber 创建购物车清理适配器
func NewCartScrubber(carts cartdomain.CartRepository) *CartScrubber {
	return &CartScrubber{carts: carts}
}

// RemoveProductFromCarts 从所有购物车移除指定商品
func (s *CartScrubber) RemoveProductFromCarts(ctx context.Context, productID uint) error {
	return s.carts.RemoveProductFromAll(ctx, productID)
}

// WishlistScrubber 删除商品时从所有心愿单移除对应条目
type WishlistScrubber struct {
	wishlists wishlistdomain.WishlistRepository
}

// NewWishlistScrubber 创建心愿单清理适配器
func NewWishlistScrubber(wishlists wishlistdomain.WishlistRepository) *WishlistScrubber {
	return &WishlistScrubber{wishlists: wishlists}
}

// RemoveProductFromWishlists 从所有心愿单移除指定商品
func (s *WishlistScrubber) RemoveProductFromWishlists(ctx context.Context, productID uint) error {
	return s.wishlists.RemoveProductFromAll(ctx, productID)
}

// OrderReferenceChecker 判断商品是否被历史订单引用，决定物理删除还是下架
type OrderReferenceChecker struct {
	orders orderdomain.OrderRepository
}

// NewOrderReferenceChecker 创建订单引用检查适配器
func NewOrderReferenceChecker(orders orderdomain.OrderRepository) *OrderReferenceChecker {
	return &OrderReferenceChecker{orders: orders}
}

// HasProduct 判断商品是否被任何订单行引用
func (c *OrderReferenceChecker) HasProduct(ctx context.Context, productID uint) (bool, error) {
	return c.orders.HasProduct(ctx, productID)
}
