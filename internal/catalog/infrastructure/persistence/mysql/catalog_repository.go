package mysql

import (
	"context"
	"errors"
	"strings"

	"github.com/wyfcoding/shopping/internal/catalog/domain"
	"gorm.io/gorm"
)

type productRepository struct{ db *gorm.DB }

// NewProductRepository 创建商品仓储实例
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListActive(ctx context.Context, offset, limit int) ([]*domain.Product, int64, error) {
	var products []*domain.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Product{}).Where("active = ?", true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Offset(offset).Limit(limit).Find(&products).Error
	return products, total, err
}

func (r *productRepository) SearchActive(ctx context.Context, term string) ([]*domain.Product, error) {
	var products []*domain.Product
	pattern := "%" + strings.ToLower(term) + "%"
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Find(&products).Error
	return products, err
}

func (r *productRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	// 单条带守卫的 UPDATE，库存不会被并发读改写竞争打负
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrProductNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	// 物理删除；软删除语义由 Retire 承担
	return r.db.WithContext(ctx).Unscoped().Delete(&domain.Product{}, id).Error
}
