package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/shopping/internal/wishlist/domain"
	"gorm.io/gorm"
)

var errProductMissing = errors.New("product not found")

type memWishlistRepo struct {
	nextID    uint
	wishlists map[uint]*domain.Wishlist
}

func newMemWishlistRepo() *memWishlistRepo {
	return &memWishlistRepo{wishlists: make(map[uint]*domain.Wishlist)}
}

func (r *memWishlistRepo) Create(ctx context.Context) (*domain.Wishlist, error) {
	r.nextID++
	wishlist := &domain.Wishlist{Model: gorm.Model{ID: r.nextID}}
	r.wishlists[wishlist.ID] = wishlist
	return wishlist, nil
}

func (r *memWishlistRepo) Get(ctx context.Context, id uint) (*domain.Wishlist, error) {
	wishlist, ok := r.wishlists[id]
	if !ok {
		return nil, domain.ErrWishlistNotFound
	}
	copied := &domain.Wishlist{Model: wishlist.Model}
	copied.Items = append([]domain.WishlistItem(nil), wishlist.Items...)
	return copied, nil
}

func (r *memWishlistRepo) AddItem(ctx context.Context, wishlistID, productID uint) error {
	wishlist, ok := r.wishlists[wishlistID]
	if !ok {
		return domain.ErrWishlistNotFound
	}
	if wishlist.Contains(productID) {
		return nil
	}
	wishlist.Items = append(wishlist.Items, domain.WishlistItem{WishlistID: wishlistID, ProductID: productID})
	return nil
}

func (r *memWishlistRepo) RemoveItem(ctx context.Context, wishlistID, productID uint) error {
	wishlist, ok := r.wishlists[wishlistID]
	if !ok {
		return domain.ErrWishlistNotFound
	}
	for i := range wishlist.Items {
		if wishlist.Items[i].ProductID == productID {
			wishlist.Items = append(wishlist.Items[:i], wishlist.Items[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memWishlistRepo) RemoveProductFromAll(ctx context.Context, productID uint) error {
	for id := range r.wishlists {
		if err := r.RemoveItem(ctx, id, productID); err != nil {
			return err
		}
	}
	return nil
}

type productReaderStub struct {
	products map[uint]domain.ProductSummary
}

func (s productReaderStub) GetProduct(ctx context.Context, id uint) (domain.ProductSummary, error) {
	p, ok := s.products[id]
	if !ok {
		return domain.ProductSummary{}, errProductMissing
	}
	return p, nil
}

func newTestService() *WishlistService {
	reader := productReaderStub{products: map[uint]domain.ProductSummary{
		1: {ID: 1, Name: "widget", Price: decimal.RequireFromString("10.00"), Stock: 5},
		2: {ID: 2, Name: "gadget", Price: decimal.RequireFromString("3.50"), Stock: 9},
	}}
	return NewWishlistService(newMemWishlistRepo(), reader)
}

func TestWishlistSetSemantics(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	wishlist, err := svc.CreateWishlist(ctx)
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, wishlist.ID, 1)
	require.NoError(t, err)

	// 重复收藏不产生重复条目
	view, err := svc.AddProduct(ctx, wishlist.ID, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "widget", view.Items[0].Name)

	view, err = svc.AddProduct(ctx, wishlist.ID, 2)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	wishlist, err := svc.CreateWishlist(ctx)
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, wishlist.ID, 99)
	assert.ErrorIs(t, err, errProductMissing)
}

func TestWishlistRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	wishlist, err := svc.CreateWishlist(ctx)
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, wishlist.ID, 1)
	require.NoError(t, err)

	view, err := svc.RemoveProduct(ctx, wishlist.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	view, err = svc.RemoveProduct(ctx, wishlist.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestWishlistContains(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	wishlist, err := svc.CreateWishlist(ctx)
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, wishlist.ID, 1)
	require.NoError(t, err)

	contained, err := svc.Contains(ctx, wishlist.ID, 1)
	require.NoError(t, err)
	assert.True(t, contained)

	contained, err = svc.Contains(ctx, wishlist.ID, 2)
	require.NoError(t, err)
	assert.False(t, contained)
}

func TestWishlistNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.GetWishlist(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrWishlistNotFound)

	_, err = svc.AddProduct(ctx, 99, 1)
	assert.ErrorIs(t, err, domain.ErrWishlistNotFound)
}
