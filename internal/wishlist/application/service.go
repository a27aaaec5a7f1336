// Package application 心愿单应用服务
package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopping/internal/wishlist/domain"
)

// WishlistItemView 心愿单条目视图
type WishlistItemView struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

// WishlistView 心愿单视图
type WishlistView struct {
	ID    uint               `json:"id"`
	Items []WishlistItemView `json:"items"`
}

// WishlistService 心愿单读写都在这一个服务里，没必要再拆
type WishlistService struct {
	repo     domain.WishlistRepository
	products domain.ProductReader
}

// NewWishlistService 创建心愿单服务实例
func NewWishlistService(repo domain.WishlistRepository, products domain.ProductReader) *WishlistService {
	return &WishlistService{repo: repo, products: products}
}

// CreateWishlist 创建空心愿单
func (s *WishlistService) CreateWishlist(ctx context.Context) (WishlistView, error) {
	wishlist, err := s.repo.Create(ctx)
	if err != nil {
		return WishlistView{}, err
	}
	return s.view(ctx, wishlist)
}

// GetWishlist 获取心愿单及条目的商品摘要
func (s *WishlistService) GetWishlist(ctx context.Context, id uint) (WishlistView, error) {
	wishlist, err := s.repo.Get(ctx, id)
	if err != nil {
		return WishlistView{}, err
	}
	return s.view(ctx, wishlist)
}

// AddProduct 收藏商品，商品必须存在，重复收藏幂等
func (s *WishlistService) AddProduct(ctx context.Context, wishlistID, productID uint) (WishlistView, error) {
	if _, err := s.repo.Get(ctx, wishlistID); err != nil {
		return WishlistView{}, err
	}
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return WishlistView{}, err
	}
	if err := s.repo.AddItem(ctx, wishlistID, productID); err != nil {
		return WishlistView{}, err
	}
	return s.GetWishlist(ctx, wishlistID)
}

// RemoveProduct 取消收藏，商品不在单内时幂等成功
func (s *WishlistService) RemoveProduct(ctx context.Context, wishlistID, productID uint) (WishlistView, error) {
	if _, err := s.repo.Get(ctx, wishlistID); err != nil {
		return WishlistView{}, err
	}
	if err := s.repo.RemoveItem(ctx, wishlistID, productID); err != nil {
		return WishlistView{}, err
	}
	return s.GetWishlist(ctx, wishlistID)
}

// Contains 判断商品是否已被收藏
func (s *WishlistService) Contains(ctx context.Context, wishlistID, productID uint) (bool, error) {
	wishlist, err := s.repo.Get(ctx, wishlistID)
	if err != nil {
		return false, err
	}
	return wishlist.Contains(productID), nil
}

func (s *WishlistService) view(ctx context.Context, wishlist *domain.Wishlist) (WishlistView, error) {
	view := WishlistView{ID: wishlist.ID, Items: make([]WishlistItemView, 0, len(wishlist.Items))}
	for _, item := range wishlist.Items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return WishlistView{}, err
		}
		view.Items = append(view.Items, WishlistItemView{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Stock:     product.Stock,
		})
	}
	return view, nil
}
