// Package adapter 提供心愿单上下文对目录上下文的只读适配
package adapter

import (
	"context"

	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/internal/wishlist/domain"
)

// ProductReader 将目录仓储适配为心愿单上下文的商品读取端口
type ProductReader struct {
	products catalogdomain.ProductRepository
}

// NewProductReader 创建商品读取适配器
func NewProductReader(products catalogdomain.ProductRepository) *ProductReader {
	return &ProductReader{products: products}
}

// GetProduct 读取商品摘要
func (r *ProductReader) GetProduct(ctx context.Context, id uint) (domain.ProductSummary, error) {
	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		return domain.ProductSummary{}, err
	}
	return domain.ProductSummary{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}, nil
}
