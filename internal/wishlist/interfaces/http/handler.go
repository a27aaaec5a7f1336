// Package http 提供心愿单的 HTTP 接口
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/internal/wishlist/application"
	"github.com/wyfcoding/shopping/internal/wishlist/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/response"
)

// WishlistHandler HTTP 处理器
type WishlistHandler struct {
	svc *application.WishlistService
}

// NewWishlistHandler 创建 HTTP 处理器实例
func NewWishlistHandler(svc *application.WishlistService) *WishlistHandler {
	return &WishlistHandler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *WishlistHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/wishlists")
	{
		api.POST("", h.CreateWishlist)
		api.GET("/:id", h.GetWishlist)
		api.POST("/:id/items", h.AddProduct)
		api.DELETE("/:id/items/:productId", h.RemoveProduct)
		api.GET("/:id/items/:productId", h.Contains)
	}
}

// CreateWishlist 创建空心愿单
func (h *WishlistHandler) CreateWishlist(c *gin.Context) {
	view, err := h.svc.CreateWishlist(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to create wishlist", err)
		return
	}

	response.Created(c, view)
}

// GetWishlist 获取心愿单
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}

	view, err := h.svc.GetWishlist(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to get wishlist", err)
		return
	}

	response.Success(c, view)
}

// AddProductRequest 收藏请求
type AddProductRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddProduct 收藏商品，重复收藏幂等
func (h *WishlistHandler) AddProduct(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}

	var req AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.svc.AddProduct(c.Request.Context(), id, req.ProductID)
	if err != nil {
		h.fail(c, "Failed to add wishlist item", err)
		return
	}

	response.Success(c, view)
}

// RemoveProduct 取消收藏，商品不在单内时幂等成功
func (h *WishlistHandler) RemoveProduct(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseParam(c, "productId")
	if !ok {
		return
	}

	view, err := h.svc.RemoveProduct(c.Request.Context(), id, productID)
	if err != nil {
		h.fail(c, "Failed to remove wishlist item", err)
		return
	}

	response.Success(c, view)
}

// Contains 判断商品是否已被收藏
func (h *WishlistHandler) Contains(c *gin.Context) {
	id, ok := parseParam(c, "id")
	if !ok {
		return
	}
	productID, ok := parseParam(c, "productId")
	if !ok {
		return
	}

	contained, err := h.svc.Contains(c.Request.Context(), id, productID)
	if err != nil {
		h.fail(c, "Failed to check wishlist item", err)
		return
	}

	response.Success(c, gin.H{"product_id": productID, "contained": contained})
}

func (h *WishlistHandler) fail(c *gin.Context, msg string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), msg, "error", err)
	}
	response.ErrorWithStatus(c, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrWishlistNotFound),
		errors.Is(err, catalogdomain.ErrProductNotFound):
		return http.StatusNotFound
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
