package models

import "time"

type Restaurant struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Cuisine     string  `json:"cuisine,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Image       string  `json:"image,omitempty"`
	DeliveryFee string  `json:"delivery_fee,omitempty"`
}

type MenuItem struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Category     string    `json:"category,omitempty"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image,omitempty"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateMenuItemRequest struct {
	Name        string  `json:"item_name" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Available   bool    `json:"available"`
}

// UpdateMenuItemRequest carries a partial update; nil fields are untouched.
type UpdateMenuItemRequest struct {
	Name        *string  `json:"item_name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}
