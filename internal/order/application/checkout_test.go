package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/shopping/internal/order/domain"
	"github.com/wyfcoding/shopping/pkg/keylock"
	"gorm.io/gorm"
)

type cartReaderStub struct {
	carts map[uint]domain.CartSnapshot
}

func (s cartReaderStub) GetCart(ctx context.Context, cartID uint) (domain.CartSnapshot, error) {
	snap, ok := s.carts[cartID]
	if !ok {
		return domain.CartSnapshot{}, errors.New("cart not found")
	}
	return snap, nil
}

type productReaderStub struct {
	products map[uint]domain.ProductSnapshot
}

func (s productReaderStub) GetProduct(ctx context.Context, id uint) (domain.ProductSnapshot, error) {
	p, ok := s.products[id]
	if !ok {
		return domain.ProductSnapshot{}, errors.New("product not found")
	}
	return p, nil
}

// checkoutTxSpy 记录提交的订单，可注入失败
type checkoutTxSpy struct {
	committed *domain.Order
	cartID    uint
	err       error
}

func (s *checkoutTxSpy) Commit(ctx context.Context, order *domain.Order, cartID uint) error {
	if s.err != nil {
		return s.err
	}
	order.ID = 1
	s.committed = order
	s.cartID = cartID
	return nil
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newCheckoutService(carts map[uint]domain.CartSnapshot, products map[uint]domain.ProductSnapshot, tx domain.CheckoutTx) *CheckoutService {
	return NewCheckoutService(
		cartReaderStub{carts: carts},
		productReaderStub{products: products},
		tx,
		keylock.New(),
	)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	products := map[uint]domain.ProductSnapshot{
		1: {ID: 1, Name: "widget", Price: money("10.00"), Stock: 5},
		2: {ID: 2, Name: "gadget", Price: money("3.50"), Stock: 9},
	}

	t.Run("snapshots current prices into order lines", func(t *testing.T) {
		carts := map[uint]domain.CartSnapshot{
			7: {ID: 7, Lines: []domain.CartLine{
				{ProductID: 1, Quantity: 2},
				{ProductID: 2, Quantity: 3},
			}},
		}
		tx := &checkoutTxSpy{}
		svc := newCheckoutService(carts, products, tx)

		view, err := svc.Checkout(ctx, 7)
		require.NoError(t, err)

		require.NotNil(t, tx.committed)
		assert.Equal(t, uint(7), tx.cartID)
		require.Len(t, tx.committed.Items, 2)
		assert.True(t, tx.committed.Items[0].Price.Equal(money("10.00")))
		assert.True(t, tx.committed.Total.Equal(money("30.50")), "total = %s", tx.committed.Total)

		require.Len(t, view.Lines, 2)
		assert.Equal(t, "widget", view.Lines[0].Name)
		assert.True(t, view.Lines[0].LineTotal.Equal(money("20.00")))
		assert.True(t, view.Total.Equal(money("30.50")))
	})

	t.Run("empty cart is rejected before the transaction", func(t *testing.T) {
		carts := map[uint]domain.CartSnapshot{7: {ID: 7}}
		tx := &checkoutTxSpy{}
		svc := newCheckoutService(carts, products, tx)

		_, err := svc.Checkout(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
		assert.Nil(t, tx.committed)
	})

	t.Run("transaction failure propagates", func(t *testing.T) {
		carts := map[uint]domain.CartSnapshot{
			7: {ID: 7, Lines: []domain.CartLine{{ProductID: 1, Quantity: 2}}},
		}
		tx := &checkoutTxSpy{err: domain.ErrInsufficientStock}
		svc := newCheckoutService(carts, products, tx)

		_, err := svc.Checkout(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})

	t.Run("missing cart propagates error", func(t *testing.T) {
		svc := newCheckoutService(map[uint]domain.CartSnapshot{}, products, &checkoutTxSpy{})
		_, err := svc.Checkout(ctx, 99)
		assert.Error(t, err)
	})
}

type orderRepoStub struct {
	orders map[uint]*domain.Order
}

func (s orderRepoStub) Get(ctx context.Context, id uint) (*domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s orderRepoStub) ListAll(ctx context.Context) ([]*domain.Order, error) {
	var all []*domain.Order
	for _, order := range s.orders {
		all = append(all, order)
	}
	return all, nil
}

func (s orderRepoStub) HasProduct(ctx context.Context, productID uint) (bool, error) {
	for _, order := range s.orders {
		for _, item := range order.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func TestOrderQuery(t *testing.T) {
	ctx := context.Background()
	products := map[uint]domain.ProductSnapshot{
		1: {ID: 1, Name: "widget", Price: money("12.00"), Stock: 5},
	}
	// 下单后商品改价为 12.00，订单行仍按下单时的 10.00 展示
	repo := orderRepoStub{orders: map[uint]*domain.Order{
		1: {
			Model: gorm.Model{ID: 1},
			Items: []domain.OrderItem{{OrderID: 1, ProductID: 1, Quantity: 2, Price: money("10.00")}},
			Total: money("20.00"),
		},
	}}
	svc := NewOrderQueryService(repo, productReaderStub{products: products})

	t.Run("order lines keep purchase-time prices", func(t *testing.T) {
		view, err := svc.GetOrder(ctx, 1)
		require.NoError(t, err)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, "widget", view.Lines[0].Name)
		assert.True(t, view.Lines[0].UnitPrice.Equal(money("10.00")))
		assert.True(t, view.Total.Equal(money("20.00")))
	})

	t.Run("unknown order fails", func(t *testing.T) {
		_, err := svc.GetOrder(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})

	t.Run("list returns all orders", func(t *testing.T) {
		views, err := svc.ListOrders(ctx)
		require.NoError(t, err)
		assert.Len(t, views, 1)
	})
}
