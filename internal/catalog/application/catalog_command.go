package application

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
)

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// UpdateProductCommand 更新商品命令，nil 字段保持原值
type UpdateProductCommand struct {
	ID          uint
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Active      *bool
}

// CatalogCommandService 商品目录命令服务
type CatalogCommandService struct {
	repo      domain.ProductRepository
	carts     domain.CartScrubber
	wishlists domain.WishlistScrubber
	orders    domain.OrderReferenceChecker
	publisher domain.EventPublisher
}

// NewCatalogCommandService 创建商品目录命令服务实例
func NewCatalogCommandService(
	repo domain.ProductRepository,
	carts domain.CartScrubber,
	wishlists domain.WishlistScrubber,
	orders domain.OrderReferenceChecker,
	publisher domain.EventPublisher,
) *CatalogCommandService {
	return &CatalogCommandService{
		repo:      repo,
		carts:     carts,
		wishlists: wishlists,
		orders:    orders,
		publisher: publisher,
	}
}

// CreateProduct 处理创建商品
func (s *CatalogCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
		Active:      true,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	event := domain.ProductCreatedEvent{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, "product.created", productKey(product.ID), event)

	return product, nil
}

// UpdateProduct 处理更新商品：应用非空字段后重新读取并返回最新记录
func (s *CatalogCommandService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	oldStock := product.Stock

	if cmd.Name != nil {
		product.Name = *cmd.Name
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
	}
	if cmd.Price != nil {
		product.Price = *cmd.Price
	}
	if cmd.Stock != nil {
		product.Stock = *cmd.Stock
	}
	if cmd.Active != nil {
		product.Active = *cmd.Active
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	event := domain.ProductUpdatedEvent{
		ProductID: updated.ID,
		Name:      updated.Name,
		Price:     updated.Price,
		Stock:     updated.Stock,
		Active:    updated.Active,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, "product.updated", productKey(updated.ID), event)

	if oldStock != updated.Stock {
		stockEvent := domain.ProductStockChangedEvent{
			ProductID: updated.ID,
			OldStock:  oldStock,
			NewStock:  updated.Stock,
			Timestamp: time.Now(),
		}
		s.publisher.Publish(ctx, "product.stock.changed", productKey(updated.ID), stockEvent)
	}

	return updated, nil
}

// AdjustStock 原子调整库存（stock += delta），结果为负时失败
func (s *CatalogCommandService) AdjustStock(ctx context.Context, id uint, delta int) (*domain.Product, error) {
	if err := s.repo.AdjustStock(ctx, id, delta); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event := domain.ProductStockChangedEvent{
		ProductID: product.ID,
		OldStock:  product.Stock - delta,
		NewStock:  product.Stock,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, "product.stock.changed", productKey(product.ID), event)

	return product, nil
}

// DeleteProduct 删除商品，级联处理引用：
//  1. 从所有购物车中移除对应商品行
//  2. 从所有心愿单中移除商品引用
//  3. 若被任一历史订单行引用，则下架（active=false, stock=0）而非删除
//  4. 否则物理删除
func (s *CatalogCommandService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.carts.RemoveProductFromCarts(ctx, id); err != nil {
		return err
	}
	if err := s.wishlists.RemoveProductFromWishlists(ctx, id); err != nil {
		return err
	}

	referenced, err := s.orders.HasProduct(ctx, id)
	if err != nil {
		return err
	}

	if referenced {
		product.Retire()
		if err := s.repo.Save(ctx, product); err != nil {
			return err
		}
		logger.Info(ctx, "Product retired instead of deleted", "product_id", id)

		event := domain.ProductRetiredEvent{
			ProductID: product.ID,
			Name:      product.Name,
			Timestamp: time.Now(),
		}
		s.publisher.Publish(ctx, "product.retired", productKey(product.ID), event)
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	event := domain.ProductDeletedEvent{
		ProductID: product.ID,
		Name:      product.Name,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, "product.deleted", productKey(product.ID), event)
	return nil
}

func productKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
