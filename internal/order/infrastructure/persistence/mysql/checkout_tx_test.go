package mysql

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/internal/order/domain"
	"github.com/wyfcoding/shopping/pkg/db"
	"github.com/wyfcoding/shopping/pkg/outbox"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*db.DB, *gorm.DB) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "checkout.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(
		&catalogdomain.Product{},
		&cartdomain.Cart{},
		&cartdomain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
		&outbox.Message{},
	))

	return &db.DB{DB: gormDB}, gormDB
}

func seedProduct(t *testing.T, gormDB *gorm.DB, name string, priceStr string, stock int) *catalogdomain.Product {
	t.Helper()
	product := &catalogdomain.Product{
		Name:   name,
		Price:  decimal.RequireFromString(priceStr),
		Stock:  stock,
		Active: true,
	}
	require.NoError(t, gormDB.Create(product).Error)
	return product
}

func seedCart(t *testing.T, gormDB *gorm.DB, lines map[uint]int) *cartdomain.Cart {
	t.Helper()
	cart := &cartdomain.Cart{}
	require.NoError(t, gormDB.Create(cart).Error)
	for productID, qty := range lines {
		item := &cartdomain.CartItem{CartID: cart.ID, ProductID: productID, Quantity: qty}
		require.NoError(t, gormDB.Create(item).Error)
	}
	return cart
}

func stockOf(t *testing.T, gormDB *gorm.DB, productID uint) int {
	t.Helper()
	var product catalogdomain.Product
	require.NoError(t, gormDB.First(&product, productID).Error)
	return product.Stock
}

func countRows(t *testing.T, gormDB *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gormDB.Model(model).Count(&count).Error)
	return count
}

func TestCheckoutTxCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("success decrements stock, persists order, clears cart and writes one outbox row", func(t *testing.T) {
		database, gormDB := newTestDB(t)
		widget := seedProduct(t, gormDB, "widget", "10.00", 5)
		cart := seedCart(t, gormDB, map[uint]int{widget.ID: 2})

		order := &domain.Order{
			Items: []domain.OrderItem{{ProductID: widget.ID, Quantity: 2, Price: widget.Price}},
			Total: decimal.RequireFromString("20.00"),
		}
		tx := NewCheckoutTx(database, outbox.NewManager(gormDB))
		require.NoError(t, tx.Commit(ctx, order, cart.ID))

		assert.Equal(t, 3, stockOf(t, gormDB, widget.ID))
		assert.NotZero(t, order.ID)

		var persisted domain.Order
		require.NoError(t, gormDB.Preload("Items").First(&persisted, order.ID).Error)
		require.Len(t, persisted.Items, 1)
		assert.True(t, persisted.Total.Equal(decimal.RequireFromString("20.00")))

		assert.Zero(t, countRows(t, gormDB, &cartdomain.CartItem{}))

		var msgs []outbox.Message
		require.NoError(t, gormDB.Find(&msgs).Error)
		require.Len(t, msgs, 1)
		assert.Equal(t, "order.created", msgs[0].Topic)
		assert.Equal(t, outbox.StatusPending, msgs[0].Status)

		var event domain.OrderCreatedEvent
		require.NoError(t, json.Unmarshal(msgs[0].Payload, &event))
		assert.Equal(t, order.ID, event.OrderID)
		assert.Equal(t, cart.ID, event.CartID)
	})

	t.Run("insufficient stock fails and leaves everything untouched", func(t *testing.T) {
		database, gormDB := newTestDB(t)
		widget := seedProduct(t, gormDB, "widget", "10.00", 5)
		cart := seedCart(t, gormDB, map[uint]int{widget.ID: 6})

		order := &domain.Order{
			Items: []domain.OrderItem{{ProductID: widget.ID, Quantity: 6, Price: widget.Price}},
			Total: decimal.RequireFromString("60.00"),
		}
		tx := NewCheckoutTx(database, outbox.NewManager(gormDB))
		err := tx.Commit(ctx, order, cart.ID)
		require.ErrorIs(t, err, domain.ErrInsufficientStock)

		assert.Equal(t, 5, stockOf(t, gormDB, widget.ID))
		assert.Zero(t, countRows(t, gormDB, &domain.Order{}))
		assert.Equal(t, int64(1), countRows(t, gormDB, &cartdomain.CartItem{}))
		assert.Zero(t, countRows(t, gormDB, &outbox.Message{}))
	})

	t.Run("failure on a later line rolls back earlier decrements", func(t *testing.T) {
		database, gormDB := newTestDB(t)
		widget := seedProduct(t, gormDB, "widget", "10.00", 5)
		gadget := seedProduct(t, gormDB, "gadget", "3.50", 1)
		cart := seedCart(t, gormDB, map[uint]int{widget.ID: 2, gadget.ID: 4})

		order := &domain.Order{
			Items: []domain.OrderItem{
				{ProductID: widget.ID, Quantity: 2, Price: widget.Price},
				{ProductID: gadget.ID, Quantity: 4, Price: gadget.Price},
			},
			Total: decimal.RequireFromString("34.00"),
		}
		tx := NewCheckoutTx(database, outbox.NewManager(gormDB))
		err := tx.Commit(ctx, order, cart.ID)
		require.ErrorIs(t, err, domain.ErrInsufficientStock)

		// 第一行的扣减随事务一起回滚
		assert.Equal(t, 5, stockOf(t, gormDB, widget.ID))
		assert.Equal(t, 1, stockOf(t, gormDB, gadget.ID))
		assert.Zero(t, countRows(t, gormDB, &domain.Order{}))
		assert.Equal(t, int64(2), countRows(t, gormDB, &cartdomain.CartItem{}))
		assert.Zero(t, countRows(t, gormDB, &outbox.Message{}))
	})
}
