package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopping/internal/cart/domain"
)

// CartQueryService 购物车查询服务
type CartQueryService struct {
	repo     domain.CartRepository
	products domain.ProductReader
}

// NewCartQueryService 创建购物车查询服务实例
func NewCartQueryService(repo domain.CartRepository, products domain.ProductReader) *CartQueryService {
	return &CartQueryService{repo: repo, products: products}
}

// GetCart 获取购物车视图，行内商品字段实时解析
func (s *CartQueryService) GetCart(ctx context.Context, cartID uint) (CartView, error) {
	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return CartView{}, err
	}

	products, err := resolveProducts(ctx, s.products, cart)
	if err != nil {
		return CartView{}, err
	}
	return newCartView(cart, products), nil
}

// Total 按当前商品价格计算购物车总额
func (s *CartQueryService) Total(ctx context.Context, cartID uint) (decimal.Decimal, error) {
	view, err := s.GetCart(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	return view.Total, nil
}
