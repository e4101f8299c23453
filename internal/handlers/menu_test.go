package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/config"
	"github.com/ineat-platform/ineat-cart-service/internal/models"
	"github.com/ineat-platform/ineat-cart-service/internal/service"
)

type fakeMenuRepo struct {
	restaurants map[string]*models.Restaurant
	items       map[string]*models.MenuItem
	nextID      int
}

func (f *fakeMenuRepo) GetMenuItem(_ context.Context, id string) (*models.MenuItem, error) {
	return f.items[id], nil
}

func (f *fakeMenuRepo) GetRestaurant(_ context.Context, id string) (*models.Restaurant, error) {
	return f.restaurants[id], nil
}

func (f *fakeMenuRepo) ListRestaurants(_ context.Context) ([]models.Restaurant, error) {
	out := make([]models.Restaurant, 0, len(f.restaurants))
	for _, r := range f.restaurants {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeMenuRepo) ListMenu(_ context.Context, restaurantID string) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, it := range f.items {
		if it.RestaurantID == restaurantID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) CreateMenuItem(_ context.Context, restaurantID string, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	f.nextID++
	item := &models.MenuItem{
		ID:           fmt.Sprintf("m%d", f.nextID),
		RestaurantID: restaurantID,
		Name:         req.Name,
		Price:        req.Price,
		Category:     req.Category,
		Available:    req.Available,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeMenuRepo) UpdateMenuItem(_ context.Context, restaurantID, itemID string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, ok := f.items[itemID]
	if !ok || item.RestaurantID != restaurantID {
		return nil, nil
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	return item, nil
}

func (f *fakeMenuRepo) DeleteMenuItem(_ context.Context, restaurantID, itemID string) (bool, error) {
	item, ok := f.items[itemID]
	if !ok || item.RestaurantID != restaurantID {
		return false, nil
	}
	delete(f.items, itemID)
	return true, nil
}

func newMenuTestRouter() (*gin.Engine, *fakeMenuRepo) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Features: config.FeatureFlags{}}
	repo := &fakeMenuRepo{
		restaurants: map[string]*models.Restaurant{
			"r1": {ID: "r1", Name: "Dosa Hut", DeliveryFee: "₹40"},
		},
		items: map[string]*models.MenuItem{
			"m1": {ID: "m1", RestaurantID: "r1", Name: "Masala Dosa", Price: 120, Available: true},
		},
		nextID: 1,
	}

	logger := zap.NewNop()
	menuService := service.NewMenuService(repo, nil, nil, cfg, logger)
	h := NewHandlers(nil, menuService, nil, cfg, logger)

	r := gin.New()
	r.GET("/api/v1/restaurants", h.ListRestaurants)
	r.GET("/api/v1/restaurants/:id/menu", h.GetRestaurantMenu)
	r.GET("/api/v1/vendors/:vendorId/menu", h.GetVendorMenu)
	r.POST("/api/v1/vendors/:vendorId/menu", h.CreateMenuItem)
	r.PATCH("/api/v1/vendors/:vendorId/menu/:itemId", h.UpdateMenuItem)
	r.DELETE("/api/v1/vendors/:vendorId/menu/:itemId", h.DeleteMenuItem)
	return r, repo
}

func TestGetRestaurantMenu(t *testing.T) {
	r, _ := newMenuTestRouter()

	w := doRequest(t, r, http.MethodGet, "/api/v1/restaurants/r1/menu", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Restaurant models.Restaurant `json:"restaurant"`
		Menu       []models.MenuItem `json:"menu"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Restaurant.Name != "Dosa Hut" {
		t.Errorf("unexpected restaurant: %+v", resp.Restaurant)
	}
	if len(resp.Menu) != 1 || resp.Menu[0].ID != "m1" {
		t.Errorf("unexpected menu: %+v", resp.Menu)
	}
}

func TestGetRestaurantMenuNotFound(t *testing.T) {
	r, _ := newMenuTestRouter()

	w := doRequest(t, r, http.MethodGet, "/api/v1/restaurants/ghost/menu", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestCreateMenuItem(t *testing.T) {
	r, repo := newMenuTestRouter()

	req := models.CreateMenuItemRequest{Name: "Idli", Price: 60, Available: true}
	w := doRequest(t, r, http.MethodPost, "/api/v1/vendors/r1/menu", "", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var item models.MenuItem
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if item.Name != "Idli" || item.RestaurantID != "r1" {
		t.Errorf("unexpected item: %+v", item)
	}
	if _, ok := repo.items[item.ID]; !ok {
		t.Error("item was not stored")
	}
}

func TestCreateMenuItemValidation(t *testing.T) {
	r, _ := newMenuTestRouter()

	// Missing required fields.
	w := doRequest(t, r, http.MethodPost, "/api/v1/vendors/r1/menu", "", map[string]any{"category": "snacks"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for missing fields, got %d", w.Code)
	}

	// Negative price.
	w = doRequest(t, r, http.MethodPost, "/api/v1/vendors/r1/menu", "", models.CreateMenuItemRequest{Name: "Vada", Price: -5})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for negative price, got %d", w.Code)
	}

	// Unknown vendor.
	w = doRequest(t, r, http.MethodPost, "/api/v1/vendors/ghost/menu", "", models.CreateMenuItemRequest{Name: "Vada", Price: 30})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 for unknown vendor, got %d", w.Code)
	}
}

func TestUpdateMenuItem(t *testing.T) {
	r, repo := newMenuTestRouter()

	price := 135.0
	w := doRequest(t, r, http.MethodPatch, "/api/v1/vendors/r1/menu/m1", "", models.UpdateMenuItemRequest{Price: &price})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if repo.items["m1"].Price != 135 {
		t.Errorf("expected price 135, got %v", repo.items["m1"].Price)
	}

	// Item on a different vendor's menu is not reachable.
	w = doRequest(t, r, http.MethodPatch, "/api/v1/vendors/r2/menu/m1", "", models.UpdateMenuItemRequest{Price: &price})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestDeleteMenuItem(t *testing.T) {
	r, repo := newMenuTestRouter()

	w := doRequest(t, r, http.MethodDelete, "/api/v1/vendors/r1/menu/m1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if _, ok := repo.items["m1"]; ok {
		t.Error("item was not deleted")
	}

	w = doRequest(t, r, http.MethodDelete, "/api/v1/vendors/r1/menu/m1", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 on second delete, got %d", w.Code)
	}
}
