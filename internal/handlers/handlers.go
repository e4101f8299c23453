package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/cart"
	"github.com/ineat-platform/ineat-cart-service/internal/config"
	"github.com/ineat-platform/ineat-cart-service/internal/metrics"
	"github.com/ineat-platform/ineat-cart-service/internal/service"
)

// HeaderUserID carries the authenticated user's identity, set by the API
// gateway. The cart service trusts it; authentication lives upstream.
const HeaderUserID = "X-User-Id"

// Handlers holds all HTTP handlers for the cart service.
type Handlers struct {
	cartService *service.CartService
	menuService *service.MenuService
	metrics     *metrics.Metrics
	config      *config.Config
	logger      *zap.Logger
}

func NewHandlers(
	cartService *service.CartService,
	menuService *service.MenuService,
	m *metrics.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		cartService: cartService,
		menuService: menuService,
		metrics:     m,
		config:      cfg,
		logger:      logger.Named("handlers"),
	}
}

// userID extracts the caller identity; requests without it are rejected
// before any handler logic runs.
func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader(HeaderUserID)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing required header: " + HeaderUserID})
		return "", false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrDifferentRestaurant):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "different_restaurant",
			"message": "your cart holds items from another restaurant; clear it before ordering here",
		})
	case errors.Is(err, cart.ErrUnknownProduct):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, cart.ErrItemUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "item_unavailable",
			"message": "this item is currently unavailable",
		})
	case errors.Is(err, cart.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handlers) recordOp(operation string, err error) {
	if h.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	h.metrics.RecordOperation(operation, outcome)
}
