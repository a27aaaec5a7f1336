// Package http 提供购物车的 HTTP 接口
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/shopping/internal/cart/application"
	"github.com/wyfcoding/shopping/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/metrics"
	"github.com/wyfcoding/shopping/pkg/response"
)

// CartHandler HTTP 处理器
type CartHandler struct {
	cmd     *application.CartCommandService
	query   *application.CartQueryService
	metrics *metrics.Metrics
}

// NewCartHandler 创建 HTTP 处理器实例
func NewCartHandler(cmd *application.CartCommandService, query *application.CartQueryService, m *metrics.Metrics) *CartHandler {
	return &CartHandler{cmd: cmd, query: query, metrics: m}
}

// RegisterRoutes 注册路由
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/carts")
	{
		api.POST("", h.CreateCart)
		api.GET("/:id", h.GetCart)
		api.GET("/:id/total", h.GetTotal)
		api.DELETE("/:id", h.ClearCart)
		api.POST("/:id/items", h.AddItem)
		api.PUT("/:id/items/:productId", h.UpdateItemQuantity)
		api.DELETE("/:id/items/:productId", h.RemoveItem)
	}
}

// CreateCart 创建空购物车
func (h *CartHandler) CreateCart(c *gin.Context) {
	view, err := h.cmd.CreateCart(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to create cart", err)
		return
	}

	h.metrics.CartsCreated.Inc()
	response.Created(c, view)
}

// GetCart 获取购物车明细，行金额按当前商品价格实时计算
func (h *CartHandler) GetCart(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}

	view, err := h.query.GetCart(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to get cart", err)
		return
	}

	response.Success(c, view)
}

// GetTotal 获取购物车总额
func (h *CartHandler) GetTotal(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}

	total, err := h.query.Total(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to get cart total", err)
		return
	}

	response.Success(c, gin.H{"cart_id": id, "total": total})
}

// AddItemRequest 加购请求
type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// AddItem 向购物车追加商品，已存在同商品时合并数量
func (h *CartHandler) AddItem(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.cmd.AddItem(c.Request.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		h.fail(c, "Failed to add cart item", err)
		return
	}

	h.metrics.CartItemsAdded.Inc()
	response.Success(c, view)
}

// UpdateItemQuantityRequest 数量更新请求
type UpdateItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItemQuantity 覆盖写行数量，数量小于等于 0 等价于移除
func (h *CartHandler) UpdateItemQuantity(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseParam(c, "productId")
	if !ok {
		return
	}

	var req UpdateItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.cmd.UpdateItemQuantity(c.Request.Context(), id, productID, req.Quantity)
	if err != nil {
		h.fail(c, "Failed to update cart item", err)
		return
	}

	response.Success(c, view)
}

// RemoveItem 移除行，商品不在车内时幂等成功
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseParam(c, "productId")
	if !ok {
		return
	}

	view, err := h.cmd.RemoveItem(c.Request.Context(), id, productID)
	if err != nil {
		h.fail(c, "Failed to remove cart item", err)
		return
	}

	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *CartHandler) ClearCart(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}

	if err := h.cmd.ClearCart(c.Request.Context(), id); err != nil {
		h.fail(c, "Failed to clear cart", err)
		return
	}

	response.Success(c, gin.H{"cleared": id})
}

func (h *CartHandler) fail(c *gin.Context, msg string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), msg, "error", err)
	}
	response.ErrorWithStatus(c, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, catalogdomain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrProductUnavailable):
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
