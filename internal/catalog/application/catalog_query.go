package application

import (
	"context"

	"github.com/wyfcoding/shopping/internal/catalog/domain"
)

// CatalogQueryService 商品目录查询服务
type CatalogQueryService struct {
	repo domain.ProductRepository
}

// NewCatalogQueryService 创建商品目录查询服务实例
func NewCatalogQueryService(repo domain.ProductRepository) *CatalogQueryService {
	return &CatalogQueryService{repo: repo}
}

// GetProduct 根据 ID 获取商品，包含已下架商品
func (s *CatalogQueryService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts 分页列出在售商品
func (s *CatalogQueryService) ListProducts(ctx context.Context, page, size int) ([]*domain.Product, int64, error) {
	if size <= 0 {
		size = 20
	}
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListActive(ctx, offset, size)
}

// SearchProducts 在售商品搜索（名称/描述子串，大小写不敏感）
func (s *CatalogQueryService) SearchProducts(ctx context.Context, term string) ([]*domain.Product, error) {
	return s.repo.SearchActive(ctx, term)
}
