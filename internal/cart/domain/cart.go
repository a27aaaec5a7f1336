package domain

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrItemNotFound      = errors.New("item not found in cart")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductUnavailable 商品已下架，不允许再加入购物车
	ErrProductUnavailable = errors.New("product is unavailable")
)

// Cart 购物车。行内不缓存商品名称/价格/库存，读取时实时解析商品。
type Cart struct {
	gorm.Model
	Items []CartItem `gorm:"foreignKey:CartID"`
}

func (Cart) TableName() string { return "carts" }

// CartItem 购物车行，同一购物车内每个商品至多一行
type CartItem struct {
	gorm.Model
	CartID    uint `gorm:"column:cart_id;uniqueIndex:uk_cart_product;not null"`
	ProductID uint `gorm:"column:product_id;uniqueIndex:uk_cart_product;index;not null"`
	Quantity  int  `gorm:"column:quantity;not null"`
}

func (CartItem) TableName() string { return "cart_items" }

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find 查找指定商品的行
func (c *Cart) Find(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem 添加商品：已有行累加数量，否则追加新行
func (c *Cart) AddItem(productID uint, qty int) {
	if item := c.Find(productID); item != nil {
		item.Quantity += qty
		return
	}
	c.Items = append(c.Items, CartItem{CartID: c.ID, ProductID: productID, Quantity: qty})
}

// SetQuantity 设置指定行数量，行不存在时返回 false
func (c *Cart) SetQuantity(productID uint, qty int) bool {
	item := c.Find(productID)
	if item == nil {
		return false
	}
	item.Quantity = qty
	return true
}

// RemoveItem 移除指定商品的行，行不存在时返回 false
func (c *Cart) RemoveItem(productID uint) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}
