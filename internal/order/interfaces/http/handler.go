// Package http 提供订单与结算的 HTTP 接口
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/internal/order/application"
	"github.com/wyfcoding/shopping/internal/order/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/metrics"
	"github.com/wyfcoding/shopping/pkg/response"
)

// OrderHandler HTTP 处理器
type OrderHandler struct {
	checkout *application.CheckoutService
	query    *application.OrderQueryService
	metrics  *metrics.Metrics
}

// NewOrderHandler 创建 HTTP 处理器实例
func NewOrderHandler(checkout *application.CheckoutService, query *application.OrderQueryService, m *metrics.Metrics) *OrderHandler {
	return &OrderHandler{checkout: checkout, query: query, metrics: m}
}

// RegisterRoutes 注册路由
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkout/:cartId", h.Checkout)
	api := router.Group("/orders")
	{
		api.GET("", h.ListOrders)
		api.GET("/:id", h.GetOrder)
	}
}

// Checkout 结算购物车，成功时返回生成的订单
func (h *OrderHandler) Checkout(c *gin.Context) {
	cartID, ok := parseParam(c, "cartId")
	if !ok {
		return
	}

	h.metrics.CheckoutsTotal.Inc()

	view, err := h.checkout.Checkout(c.Request.Context(), cartID)
	if err != nil {
		h.fail(c, "Failed to checkout cart", err)
		return
	}

	h.metrics.OrdersTotal.Inc()
	response.Created(c, view)
}

// GetOrder 获取订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}

	view, err := h.query.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to get order", err)
		return
	}

	response.Success(c, view)
}

// ListOrders 按创建时间倒序列出全部订单
func (h *OrderHandler) ListOrders(c *gin.Context) {
	views, err := h.query.ListOrders(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to list orders", err)
		return
	}

	response.Success(c, views)
}

func (h *OrderHandler) fail(c *gin.Context, msg string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), msg, "error", err)
	}
	response.ErrorWithStatus(c, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, cartdomain.ErrCartNotFound),
		errors.Is(err, catalogdomain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
