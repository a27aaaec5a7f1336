package application

import (
	"context"
	"strconv"
	"time"

	"github.com/wyfcoding/shopping/internal/cart/domain"
	"github.com/wyfcoding/shopping/pkg/keylock"
)

// CartCommandService 购物车命令服务。
// 同一购物车的写操作通过 keylock 串行执行，避免读改写竞争。
type CartCommandService struct {
	repo      domain.CartRepository
	products  domain.ProductReader
	publisher domain.EventPublisher
	locks     *keylock.KeyLock
}

// NewCartCommandService 创建购物车命令服务实例
func NewCartCommandService(
	repo domain.CartRepository,
	products domain.ProductReader,
	publisher domain.EventPublisher,
	locks *keylock.KeyLock,
) *CartCommandService {
	return &CartCommandService{
		repo:      repo,
		products:  products,
		publisher: publisher,
		locks:     locks,
	}
}

// CreateCart 创建空购物车
func (s *CartCommandService) CreateCart(ctx context.Context) (CartView, error) {
	cart, err := s.repo.Create(ctx)
	if err != nil {
		return CartView{}, err
	}
	return s.view(ctx, cart)
}

// AddItem 向购物车添加商品。加购仅校验商品存在且在售，
// 不检查库存；库存在数量更新与结账时强制校验。
func (s *CartCommandService) AddItem(ctx context.Context, cartID, productID uint, quantity int) (CartView, error) {
	if quantity < 1 {
		return CartView{}, domain.ErrInvalidQuantity
	}

	unlock := s.locks.Lock(cartID)
	defer unlock()

	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return CartView{}, err
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	if !product.Active {
		return CartView{}, domain.ErrProductUnavailable
	}

	cart.AddItem(productID, quantity)
	if err := s.repo.Save(ctx, cart); err != nil {
		return CartView{}, err
	}

	event := domain.CartItemAddedEvent{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, "cart.item.added", cartKey(cartID), event)

	return s.reload(ctx, cartID)
}

// UpdateItemQuantity 设置购物车行数量。
// quantity <= 0 等价于移除；超过当前库存时失败且行保持不变。
func (s *CartCommandService) UpdateItemQuantity(ctx context.Context, cartID, productID uint, quantity int) (CartView, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, cartID, productID)
	}

	unlock := s.locks.Lock(cartID)
	defer unlock()

	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return CartView{}, err
	}

	if cart.Find(productID) == nil {
		return CartView{}, domain.ErrItemNotFound
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	if quantity > product.Stock {
		return CartView{}, domain.ErrInsufficientStock
	}

	cart.SetQuantity(productID, quantity)
	if err := s.repo.Save(ctx, cart); err != nil {
		return CartView{}, err
	}

	event := domain.CartItemQuantityChangedEvent{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		Timestamp: time.Now(),
	}
	s.publisher.Publish(ctx, "cart.item.quantity.changed", cartKey(cartID), event)

	return s.reload(ctx, cartID)
}

// RemoveItem 移除购物车行。行不存在时静默成功（幂等）。
func (s *CartCommandService) RemoveItem(ctx context.Context, cartID, productID uint) (CartView, error) {
	unlock := s.locks.Lock(cartID)
	defer unlock()

	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return CartView{}, err
	}

	if cart.Find(productID) != nil {
		if err := s.repo.DeleteItem(ctx, cartID, productID); err != nil {
			return CartView{}, err
		}
		event := domain.CartItemRemovedEvent{
			CartID:    cartID,
			ProductID: productID,
			Timestamp: time.Now(),
		}
		s.publisher.Publish(ctx, "cart.item.removed", cartKey(cartID), event)
	}

	return s.reload(ctx, cartID)
}

// ClearCart 清空购物车的所有行，购物车保留可复用
func (s *CartCommandService) ClearCart(ctx context.Context, cartID uint) error {
	unlock := s.locks.Lock(cartID)
	defer unlock()

	if _, err := s.repo.Get(ctx, cartID); err != nil {
		return err
	}
	if err := s.repo.ClearItems(ctx, cartID); err != nil {
		return err
	}

	event := domain.CartClearedEvent{CartID: cartID, Timestamp: time.Now()}
	s.publisher.Publish(ctx, "cart.cleared", cartKey(cartID), event)
	return nil
}

func (s *CartCommandService) reload(ctx context.Context, cartID uint) (CartView, error) {
	cart, err := s.repo.Get(ctx, cartID)
	if err != nil {
		return CartView{}, err
	}
	return s.view(ctx, cart)
}

func (s *CartCommandService) view(ctx context.Context, cart *domain.Cart) (CartView, error) {
	products, err := resolveProducts(ctx, s.products, cart)
	if err != nil {
		return CartView{}, err
	}
	return newCartView(cart, products), nil
}

func cartKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// resolveProducts 实时解析购物车各行引用的商品
func resolveProducts(ctx context.Context, reader domain.ProductReader, cart *domain.Cart) (map[uint]domain.ProductInfo, error) {
	products := make(map[uint]domain.ProductInfo, len(cart.Items))
	for _, item := range cart.Items {
		p, err := reader.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		products[item.ProductID] = p
	}
	return products, nil
}
