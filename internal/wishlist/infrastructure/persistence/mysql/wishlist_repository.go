// Package mysql 心愿单仓储的 GORM 实现
package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/shopping/internal/wishlist/domain"
	"gorm.io/gorm"
)

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓储实例
func NewWishlistRepository(db *gorm.DB) domain.WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context) (*domain.Wishlist, error) {
	wishlist := &domain.Wishlist{}
	if err := r.db.WithContext(ctx).Create(wishlist).Error; err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (r *wishlistRepository) Get(ctx context.Context, id uint) (*domain.Wishlist, error) {
	var wishlist domain.Wishlist
	err := r.db.WithContext(ctx).Preload("Items").First(&wishlist, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrWishlistNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *wishlistRepository) AddItem(ctx context.Context, wishlistID, productID uint) error {
	item := domain.WishlistItem{WishlistID: wishlistID, ProductID: productID}
	// 唯一索引兜底重复收藏，FirstOrCreate 保证幂等
	return r.db.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		FirstOrCreate(&item).Error
}

// 硬删除，软删除的行会继续占用唯一索引
func (r *wishlistRepository) RemoveItem(ctx context.Context, wishlistID, productID uint) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&domain.WishlistItem{}).Error
}

func (r *wishlistRepository) RemoveProductFromAll(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("product_id = ?", productID).
		Delete(&domain.WishlistItem{}).Error
}
