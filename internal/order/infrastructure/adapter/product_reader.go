package adapter

import (
	"context"

	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/internal/order/domain"
)

// ProductReader 将目录仓储适配为结算侧的商品读取端口
type ProductReader struct {
	products catalogdomain.ProductRepository
}

// NewProductReader 创建商品读取适配器
func NewProductReader(products catalogdomain.ProductRepository) *ProductReader {
	return &ProductReader{products: products}
}

// GetProduct 读取商品快照，已下架商品同样可读，保证历史订单始终能展示
func (r *ProductReader) GetProduct(ctx context.Context, id uint) (domain.ProductSnapshot, error) {
	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		return domain.ProductSnapshot{}, err
	}
	return domain.ProductSnapshot{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}, nil
}
