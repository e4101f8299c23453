package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

// GetCart handles GET /api/v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.cartService.GetCart(c.Request.Context(), uid))
}

// AddItem handles POST /api/v1/cart/items
func (h *Handlers) AddItem(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind add item request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.cartService.AddItem(c.Request.Context(), uid, req.ProductID)
	h.recordOp("add", err)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// IncrementItem handles POST /api/v1/cart/items/:id/increment
func (h *Handlers) IncrementItem(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	snap, err := h.cartService.IncrementItem(c.Request.Context(), uid, c.Param("id"))
	h.recordOp("increment", err)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// DecrementItem handles POST /api/v1/cart/items/:id/decrement
//
// Decrementing at quantity 1 returns the unchanged cart; removal is a
// separate, explicit call.
func (h *Handlers) DecrementItem(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	snap, err := h.cartService.DecrementItem(c.Request.Context(), uid, c.Param("id"))
	h.recordOp("decrement", err)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// RemoveItem handles DELETE /api/v1/cart/items/:id
func (h *Handlers) RemoveItem(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	snap, err := h.cartService.RemoveItem(c.Request.Context(), uid, c.Param("id"))
	h.recordOp("remove", err)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// ItemQuantity handles GET /api/v1/cart/items/:id/quantity
func (h *Handlers) ItemQuantity(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	qty := h.cartService.ItemQuantity(c.Request.Context(), uid, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"product_id": c.Param("id"),
		"quantity":   qty,
	})
}

// ClearCart handles DELETE /api/v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	snap, err := h.cartService.ClearCart(c.Request.Context(), uid)
	h.recordOp("clear", err)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// Checkout handles POST /api/v1/cart/checkout
func (h *Handlers) Checkout(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	checkout, err := h.cartService.Checkout(c.Request.Context(), uid)
	if h.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "rejected"
		}
		h.metrics.Checkouts.WithLabelValues(outcome).Inc()
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, checkout)
}
