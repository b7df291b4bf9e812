package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cart-service/internal/catalog"
	"cart-service/internal/coupon"
	"cart-service/internal/service"
	"cart-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog      *catalog.Catalog
	cartService  *service.CartService
	orchestrator *service.CheckoutOrchestrator
}

// NewHandler creates a new HTTP handler
func NewHandler(
	cat *catalog.Catalog,
	cartService *service.CartService,
	orchestrator *service.CheckoutOrchestrator,
) *Handler {
	return &Handler{
		catalog:      cat,
		cartService:  cartService,
		orchestrator: orchestrator,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)

		v1.GET("/carts/:id", h.getCart)
		v1.DELETE("/carts/:id", h.clearCart)
		v1.POST("/carts/:id/items", h.addItem)
		v1.PATCH("/carts/:id/items/:productId", h.setQuantity)
		v1.DELETE("/carts/:id/items/:productId", h.removeItem)
		v1.POST("/carts/:id/coupon", h.applyCoupon)
		v1.POST("/carts/:id/checkout", h.checkout)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listProducts returns the full ordered catalog in a single response
func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Products())
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalog.Product(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) getCart(c *gin.Context) {
	view, err := h.cartService.GetCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load cart",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddItemRequest is the payload for adding a product to a cart
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

func (h *Handler) addItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), c.Param("id"), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to add item",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// SetQuantityRequest is the payload for setting a line's exact quantity.
// A quantity below 1 removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) setQuantity(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	view, err := h.cartService.SetQuantity(c.Request.Context(), c.Param("id"), productID, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update quantity",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) removeItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	view, err := h.cartService.RemoveItem(c.Request.Context(), c.Param("id"), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to remove item",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *Handler) clearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to clear cart",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// ApplyCouponRequest is the payload for applying a coupon code
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

func (h *Handler) applyCoupon(c *gin.Context) {
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	applied, err := h.cartService.ApplyCoupon(c.Request.Context(), c.Param("id"), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, coupon.ErrBlankCode):
			// blank input is a silent no-op, not an error
			c.Status(http.StatusNoContent)
		case errors.Is(err, coupon.ErrInvalidCoupon):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": coupon.InvalidCouponMessage})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to apply coupon",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, applied)
}

func (h *Handler) checkout(c *gin.Context) {
	ack, err := h.orchestrator.Checkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cart is empty"})
		case errors.Is(err, service.ErrCheckoutInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "Checkout already in progress"})
		case errors.Is(err, service.ErrSubmissionFailed):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "There was an error processing your order. Please try again.",
				"details": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to process checkout",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_ref":   ack.OrderRef,
		"accepted_at": ack.AcceptedAt,
		"message":     "Your order has been received and is being processed",
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
