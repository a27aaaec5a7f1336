// Package adapter 提供购物车上下文对目录上下文的只读适配
package adapter

import (
	"context"

	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
)

// ProductReader 将目录仓储适配为购物车上下文的商品读取端口
type ProductReader struct {
	products catalogdomain.ProductRepository
}

// NewProductReader 创建商品读取适配器
func NewProductReader(products catalogdomain.ProductRepository) *ProductReader {
	return &ProductReader{products: products}
}

// GetProduct 读取商品快照
func (r *ProductReader) GetProduct(ctx context.Context, id uint) (cartdomain.ProductInfo, error) {
	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		return cartdomain.ProductInfo{}, err
	}
	return cartdomain.ProductInfo{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Stock:  p.Stock,
		Active: p.Active,
	}, nil
}
