package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// CartRepository 购物车仓储接口
type CartRepository interface {
	// Create 创建空购物车
	Create(ctx context.Context) (*Cart, error)
	// Get 获取购物车及其所有行
	Get(ctx context.Context, id uint) (*Cart, error)
	// Save 保存购物车及行变更
	Save(ctx context.Context, cart *Cart) error
	// DeleteItem 删除指定行
	DeleteItem(ctx context.Context, cartID, productID uint) error
	// ClearItems 清空购物车的所有行，购物车本身保留
	ClearItems(ctx context.Context, cartID uint) error
	// RemoveProductFromAll 从所有购物车中移除指定商品的行
	RemoveProductFromAll(ctx context.Context, productID uint) error
}

// ProductInfo 购物车行解析出的商品快照
type ProductInfo struct {
	ID     uint
	Name   string
	Price  decimal.Decimal
	Stock  int
	Active bool
}

// ProductReader 解析购物车行引用的商品（目录上下文提供）
type ProductReader interface {
	GetProduct(ctx context.Context, id uint) (ProductInfo, error)
}

// EventPublisher 事件发布者接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
