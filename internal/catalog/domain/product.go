// Package domain 包含商品目录的领域模型
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInvalidStock      = errors.New("stock must not be negative")
	ErrProductInactive   = errors.New("product is inactive")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product 商品实体
type Product struct {
	gorm.Model
	Name        string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	Active      bool            `gorm:"column:active;not null;default:true" json:"active"`
}

func (Product) TableName() string { return "products" }

// Retire 下架商品：标记为不可售并清零库存。
// 被历史订单引用的商品不允许物理删除，只能下架。
func (p *Product) Retire() {
	p.Active = false
	p.Stock = 0
}

// Validate 校验商品字段
func (p *Product) Validate() error {
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}
