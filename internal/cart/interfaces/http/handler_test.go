package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/shopping/internal/cart/application"
	"github.com/wyfcoding/shopping/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/pkg/keylock"
	"github.com/wyfcoding/shopping/pkg/metrics"
	"github.com/wyfcoding/shopping/pkg/response"
	"gorm.io/gorm"
)

type memCartRepo struct {
	mu     sync.Mutex
	nextID uint
	carts  map[uint]*domain.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[uint]*domain.Cart)}
}

func (r *memCartRepo) Create(ctx context.Context) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cart := &domain.Cart{Model: gorm.Model{ID: r.nextID}}
	r.carts[cart.ID] = cart
	return copyCart(cart), nil
}

func (r *memCartRepo) Get(ctx context.Context, id uint) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (r *memCartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.ID] = copyCart(cart)
	return nil
}

func (r *memCartRepo) DeleteItem(ctx context.Context, cartID, productID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart, ok := r.carts[cartID]; ok {
		cart.RemoveItem(productID)
	}
	return nil
}

func (r *memCartRepo) ClearItems(ctx context.Context, cartID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart, ok := r.carts[cartID]; ok {
		cart.Items = nil
	}
	return nil
}

func (r *memCartRepo) RemoveProductFromAll(ctx context.Context, productID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cart := range r.carts {
		cart.RemoveItem(productID)
	}
	return nil
}

func copyCart(cart *domain.Cart) *domain.Cart {
	c := &domain.Cart{Model: cart.Model}
	c.Items = append([]domain.CartItem(nil), cart.Items...)
	return c
}

type productReaderStub struct {
	products map[uint]domain.ProductInfo
}

func (s productReaderStub) GetProduct(ctx context.Context, id uint) (domain.ProductInfo, error) {
	p, ok := s.products[id]
	if !ok {
		return domain.ProductInfo{}, catalogdomain.ErrProductNotFound
	}
	return p, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemCartRepo()
	reader := productReaderStub{products: map[uint]domain.ProductInfo{
		1: {ID: 1, Name: "widget", Price: decimal.RequireFromString("10.00"), Stock: 5, Active: true},
	}}
	locks := keylock.New()
	cmd := application.NewCartCommandService(repo, reader, noopPublisher{}, locks)
	query := application.NewCartQueryService(repo, reader)
	m := metrics.New("cart_test")

	router := gin.New()
	NewCartHandler(cmd, query, m).RegisterRoutes(router.Group("/api/v1"))
	return router, m
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartEndpoints(t *testing.T) {
	t.Run("create cart returns 201", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := doRequest(router, http.MethodPost, "/api/v1/carts", "")
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("get missing cart returns 404", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := doRequest(router, http.MethodGet, "/api/v1/carts/99", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid cart id returns 400", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w := doRequest(router, http.MethodGet, "/api/v1/carts/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("add item then read back", func(t *testing.T) {
		router, m := newTestRouter(t)
		require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/carts", "").Code)

		w := doRequest(router, http.MethodPost, "/api/v1/carts/1/items", `{"product_id":1,"quantity":2}`)
		require.Equal(t, http.StatusOK, w.Code)

		// 业务指标随成功请求走高
		assert.Equal(t, float64(1), testutil.ToFloat64(m.CartsCreated))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.CartItemsAdded))

		var body response.Body
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		data, err := json.Marshal(body.Data)
		require.NoError(t, err)

		var view application.CartView
		require.NoError(t, json.Unmarshal(data, &view))
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 2, view.Lines[0].Quantity)
		assert.True(t, view.Total.Equal(decimal.RequireFromString("20.00")), "total = %s", view.Total)
	})

	t.Run("add unknown product returns 404", func(t *testing.T) {
		router, m := newTestRouter(t)
		require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/carts", "").Code)

		w := doRequest(router, http.MethodPost, "/api/v1/carts/1/items", `{"product_id":99,"quantity":1}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		// 失败的加购不计入业务指标
		assert.Zero(t, testutil.ToFloat64(m.CartItemsAdded))
	})

	t.Run("update beyond stock returns 400", func(t *testing.T) {
		router, _ := newTestRouter(t)
		require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/carts", "").Code)
		require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/v1/carts/1/items", `{"product_id":1,"quantity":2}`).Code)

		w := doRequest(router, http.MethodPut, "/api/v1/carts/1/items/1", `{"quantity":6}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update missing line returns 404", func(t *testing.T) {
		router, _ := newTestRouter(t)
		require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/carts", "").Code)

		w := doRequest(router, http.MethodPut, "/api/v1/carts/1/items/1", `{"quantity":2}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("remove item is idempotent over http", func(t *testing.T) {
		router, _ := newTestRouter(t)
		require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/carts", "").Code)
		require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/v1/carts/1/items", `{"product_id":1,"quantity":2}`).Code)

		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodDelete, "/api/v1/carts/1/items/1", "").Code)
		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodDelete, "/api/v1/carts/1/items/1", "").Code)
	})

	t.Run("clear cart returns 200", func(t *testing.T) {
		router, _ := newTestRouter(t)
		require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/carts", "").Code)
		require.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/v1/carts/1/items", `{"product_id":1,"quantity":2}`).Code)

		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodDelete, "/api/v1/carts/1", "").Code)

		w := doRequest(router, http.MethodGet, "/api/v1/carts/1/total", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":"0"`)
	})
}
