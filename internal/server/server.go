package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/config"
	"github.com/ineat-platform/ineat-cart-service/internal/handlers"
	"github.com/ineat-platform/ineat-cart-service/internal/metrics"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	http   *http.Server
}

func New(h *handlers.Handlers, checks handlers.HealthChecks, m *metrics.Metrics, cfg *config.Config, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	if m != nil {
		router.Use(m.Middleware())
	}

	s := &Server{
		config: cfg,
		router: router,
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	s.setupRoutes(h, checks)
	return s
}

func (s *Server) setupRoutes(h *handlers.Handlers, checks handlers.HealthChecks) {
	s.router.GET("/health", h.Health)
	s.router.GET("/ready", h.Ready(checks))
	s.router.GET("/live", h.Live)
	s.router.GET("/version", h.Version)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/restaurants", h.ListRestaurants)
		v1.GET("/restaurants/:id/menu", h.GetRestaurantMenu)

		v1.GET("/cart", h.GetCart)
		v1.POST("/cart/items", h.AddItem)
		v1.POST("/cart/items/:id/increment", h.IncrementItem)
		v1.POST("/cart/items/:id/decrement", h.DecrementItem)
		v1.GET("/cart/items/:id/quantity", h.ItemQuantity)
		v1.DELETE("/cart/items/:id", h.RemoveItem)
		v1.DELETE("/cart", h.ClearCart)
		v1.POST("/cart/checkout", h.Checkout)

		v1.GET("/vendors/:vendorId/menu", h.GetVendorMenu)
		v1.POST("/vendors/:vendorId/menu", h.CreateMenuItem)
		v1.PATCH("/vendors/:vendorId/menu/:itemId", h.UpdateMenuItem)
		v1.DELETE("/vendors/:vendorId/menu/:itemId", h.DeleteMenuItem)
	}
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
