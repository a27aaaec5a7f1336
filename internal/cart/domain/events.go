package domain

import "time"

// CartItemAddedEvent 购物车加购事件
type CartItemAddedEvent struct {
	CartID    uint      `json:"cart_id"`
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemQuantityChangedEvent 购物车行数量变更事件
type CartItemQuantityChangedEvent struct {
	CartID    uint      `json:"cart_id"`
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// CartItemRemovedEvent 购物车行移除事件
type CartItemRemovedEvent struct {
	CartID    uint      `json:"cart_id"`
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CartClearedEvent 购物车清空事件
type CartClearedEvent struct {
	CartID    uint      `json:"cart_id"`
	Timestamp time.Time `json:"timestamp"`
}
