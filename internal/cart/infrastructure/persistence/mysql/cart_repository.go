package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/shopping/internal/cart/domain"
	"gorm.io/gorm"
)

type cartRepository struct{ db *gorm.DB }

// NewCartRepository 创建购物车仓储实例
func NewCartRepository(db *gorm.DB) domain.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context) (*domain.Cart, error) {
	cart := &domain.Cart{}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) Get(ctx context.Context, id uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).Preload("Items").First(&cart, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, productID uint) error {
	// 物理删除，避免软删除行占用 (cart_id, product_id) 唯一索引
	return r.db.WithContext(ctx).Unscoped().
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&domain.CartItem{}).Error
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("cart_id = ?", cartID).
		Delete(&domain.CartItem{}).Error
}

func (r *cartRepository) RemoveProductFromAll(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("product_id = ?", productID).
		Delete(&domain.CartItem{}).Error
}
