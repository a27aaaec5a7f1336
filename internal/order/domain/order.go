// Package domain 订单领域模型
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyCart 空购物车不能结算
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock 结算时库存不足
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Order 订单聚合根，行价格为下单时的快照
type Order struct {
	gorm.Model
	Items []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Total decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
}

// TableName 指定表名
func (Order) TableName() string { return "orders" }

// OrderItem 订单行
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"index;not null" json:"order_id"`
	ProductID uint            `gorm:"index;not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
}

// TableName 指定表名
func (OrderItem) TableName() string { return "order_items" }
