package cart

import "errors"

var (
	// ErrDifferentRestaurant is returned when an add would mix items from
	// two restaurants in one cart. Callers prompt the user to clear the
	// cart before switching restaurants.
	ErrDifferentRestaurant = errors.New("cart holds items from a different restaurant")

	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnknownProduct is returned when an add references a product the
	// catalog does not know.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrItemUnavailable is returned when an add references a menu item the
	// vendor has marked unavailable.
	ErrItemUnavailable = errors.New("menu item is unavailable")
)
