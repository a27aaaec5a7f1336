package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Get 按 ID 读取订单及其明细
	Get(ctx context.Context, id uint) (*Order, error)
	// ListAll 按创建时间倒序列出全部订单
	ListAll(ctx context.Context) ([]*Order, error)
	// HasProduct 判断商品是否被任何订单行引用
	HasProduct(ctx context.Context, productID uint) (bool, error)
}

// CheckoutTx 结算事务端口：扣减库存、落库订单、清空购物车必须同时成功或同时失败
type CheckoutTx interface {
	Commit(ctx context.Context, order *Order, cartID uint) error
}

// CartLine 购物车行快照
type CartLine struct {
	ProductID uint
	Quantity  int
}

// CartSnapshot 结算视角的购物车快照
type CartSnapshot struct {
	ID    uint
	Lines []CartLine
}

// CartReader 购物车读取端口
type CartReader interface {
	GetCart(ctx context.Context, cartID uint) (CartSnapshot, error)
}

// ProductSnapshot 结算视角的商品快照
type ProductSnapshot struct {
	ID    uint
	Name  string
	Price decimal.Decimal
	Stock int
}

// ProductReader 商品读取端口
type ProductReader interface {
	GetProduct(ctx context.Context, id uint) (ProductSnapshot, error)
}
