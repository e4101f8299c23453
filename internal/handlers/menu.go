package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

// ListRestaurants handles GET /api/v1/restaurants
func (h *Handlers) ListRestaurants(c *gin.Context) {
	restaurants, err := h.menuService.ListRestaurants(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list restaurants", zap.Error(err))
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// GetRestaurantMenu handles GET /api/v1/restaurants/:id/menu
func (h *Handlers) GetRestaurantMenu(c *gin.Context) {
	restaurantID := c.Param("id")

	rest, err := h.menuService.GetRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		handleError(c, err)
		return
	}
	if rest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}

	items, err := h.menuService.GetMenu(c.Request.Context(), restaurantID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": rest,
		"menu":       items,
	})
}

// GetVendorMenu handles GET /api/v1/vendors/:vendorId/menu
func (h *Handlers) GetVendorMenu(c *gin.Context) {
	items, err := h.menuService.GetMenu(c.Request.Context(), c.Param("vendorId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"menu": items})
}

// CreateMenuItem handles POST /api/v1/vendors/:vendorId/menu
func (h *Handlers) CreateMenuItem(c *gin.Context) {
	var req models.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
		return
	}

	item, err := h.menuService.CreateMenuItem(c.Request.Context(), c.Param("vendorId"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem handles PATCH /api/v1/vendors/:vendorId/menu/:itemId
func (h *Handlers) UpdateMenuItem(c *gin.Context) {
	var req models.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Price != nil && *req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
		return
	}

	item, err := h.menuService.UpdateMenuItem(c.Request.Context(), c.Param("vendorId"), c.Param("itemId"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /api/v1/vendors/:vendorId/menu/:itemId
func (h *Handlers) DeleteMenuItem(c *gin.Context) {
	deleted, err := h.menuService.DeleteMenuItem(c.Request.Context(), c.Param("vendorId"), c.Param("itemId"))
	if err != nil {
		handleError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
