// Package domain 心愿单领域模型
package domain

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrWishlistNotFound 心愿单不存在
	ErrWishlistNotFound = errors.New("wishlist not found")
)

// Wishlist 心愿单，商品集合语义，同一商品只出现一次
type Wishlist struct {
	gorm.Model
	Items []WishlistItem `gorm:"foreignKey:WishlistID" json:"items"`
}

// TableName 指定表名
func (Wishlist) TableName() string { return "wishlists" }

// WishlistItem 心愿单条目
type WishlistItem struct {
	gorm.Model
	WishlistID uint `gorm:"not null;uniqueIndex:uk_wishlist_product" json:"wishlist_id"`
	ProductID  uint `gorm:"not null;uniqueIndex:uk_wishlist_product" json:"product_id"`
}

// TableName 指定表名
func (WishlistItem) TableName() string { return "wishlist_items" }

// Contains 判断商品是否在心愿单内
func (w *Wishlist) Contains(productID uint) bool {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			return true
		}
	}
	return false
}
