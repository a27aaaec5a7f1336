// Package http 提供商品目录的 HTTP 接口
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopping/internal/catalog/application"
	"github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/metrics"
	"github.com/wyfcoding/shopping/pkg/response"
)

// CatalogHandler HTTP 处理器
type CatalogHandler struct {
	cmd     *application.CatalogCommandService
	query   *application.CatalogQueryService
	metrics *metrics.Metrics
}

// NewCatalogHandler 创建 HTTP 处理器实例
func NewCatalogHandler(cmd *application.CatalogCommandService, query *application.CatalogQueryService, m *metrics.Metrics) *CatalogHandler {
	return &CatalogHandler{cmd: cmd, query: query, metrics: m}
}

// RegisterRoutes 注册路由
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/products")
	{
		api.POST("", h.CreateProduct)
		api.GET("", h.ListProducts)
		api.GET("/search", h.SearchProducts)
		api.GET("/:id", h.GetProduct)
		api.PATCH("/:id", h.UpdateProduct)
		api.DELETE("/:id", h.DeleteProduct)
		api.POST("/:id/stock", h.AdjustStock)
	}
}

// ProductResponse 商品响应
type ProductResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Active:      p.Active,
	}
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// CreateProduct 创建商品
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.CreateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}

	product, err := h.cmd.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, "Failed to create product", err)
		return
	}

	h.metrics.ProductsTotal.Inc()
	response.Created(c, toProductResponse(product))
}

// GetProduct 获取商品详情
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.query.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to get product", err)
		return
	}

	response.Success(c, toProductResponse(product))
}

// ListProducts 分页列出在售商品
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	products, total, err := h.query.ListProducts(c.Request.Context(), page, size)
	if err != nil {
		h.fail(c, "Failed to list products", err)
		return
	}

	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	response.Success(c, gin.H{"items": items, "total": total, "page": page, "size": size})
}

// SearchProducts 搜索在售商品
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	term := c.Query("q")

	products, err := h.query.SearchProducts(c.Request.Context(), term)
	if err != nil {
		h.fail(c, "Failed to search products", err)
		return
	}

	items := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	response.Success(c, items)
}

// UpdateProductRequest 更新商品请求，省略的字段保持原值
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Active      *bool            `json:"active"`
}

// UpdateProduct 更新商品
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.UpdateProductCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      req.Active,
	}

	product, err := h.cmd.UpdateProduct(c.Request.Context(), cmd)
	if err != nil {
		h.fail(c, "Failed to update product", err)
		return
	}

	response.Success(c, toProductResponse(product))
}

// DeleteProduct 删除商品（被历史订单引用时改为下架）
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.cmd.DeleteProduct(c.Request.Context(), id); err != nil {
		h.fail(c, "Failed to delete product", err)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// AdjustStockRequest 库存调整请求
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustStock 原子调整库存
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.cmd.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		h.fail(c, "Failed to adjust stock", err)
		return
	}

	response.Success(c, toProductResponse(product))
}

func (h *CatalogHandler) fail(c *gin.Context, msg string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), msg, "error", err)
	}
	response.ErrorWithStatus(c, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidStock),
		errors.Is(err, domain.ErrProductInactive),
		errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
