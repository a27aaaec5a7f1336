package application

import (
	"context"

	"github.com/wyfcoding/shopping/internal/order/domain"
)

// OrderQueryService 订单查询服务
type OrderQueryService struct {
	repo     domain.OrderRepository
	products domain.ProductReader
}

// NewOrderQueryService 创建订单查询服务实例
func NewOrderQueryService(repo domain.OrderRepository, products domain.ProductReader) *OrderQueryService {
	return &OrderQueryService{repo: repo, products: products}
}

// GetOrder 获取订单详情
func (s *OrderQueryService) GetOrder(ctx context.Context, id uint) (OrderView, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return OrderView{}, err
	}
	names, err := s.resolveNames(ctx, order)
	if err != nil {
		return OrderView{}, err
	}
	return newOrderView(order, names), nil
}

// ListOrders 按创建时间倒序列出全部订单
func (s *OrderQueryService) ListOrders(ctx context.Context) ([]OrderView, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		names, err := s.resolveNames(ctx, order)
		if err != nil {
			return nil, err
		}
		views = append(views, newOrderView(order, names))
	}
	return views, nil
}

// resolveNames 解析订单行的商品名。
// 被订单引用的商品只会被下架而不会被物理删除，因此这里总能读到。
func (s *OrderQueryService) resolveNames(ctx context.Context, order *domain.Order) (map[uint]string, error) {
	names := make(map[uint]string, len(order.Items))
	for _, item := range order.Items {
		if _, ok := names[item.ProductID]; ok {
			continue
		}
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		names[item.ProductID] = product.Name
	}
	return names, nil
}
