package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/models"
)

// PostgresMenuRepository stores the restaurant and menu catalog in
// PostgreSQL. Not-found reads return nil, nil; callers decide whether
// absence is an error.
type PostgresMenuRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresMenuRepository(db *sql.DB, logger *zap.Logger) *PostgresMenuRepository {
	return &PostgresMenuRepository{
		db:     db,
		logger: logger.Named("menu-repository"),
	}
}

func (r *PostgresMenuRepository) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, cuisine, rating, image, delivery_fee
		FROM restaurants
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var rest models.Restaurant
		var cuisine, image, deliveryFee sql.NullString
		var rating sql.NullFloat64
		if err := rows.Scan(&rest.ID, &rest.Name, &cuisine, &rating, &image, &deliveryFee); err != nil {
			return nil, err
		}
		rest.Cuisine = cuisine.String
		rest.Rating = rating.Float64
		rest.Image = image.String
		rest.DeliveryFee = deliveryFee.String
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresMenuRepository) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	var rest models.Restaurant
	var cuisine, image, deliveryFee sql.NullString
	var rating sql.NullFloat64

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, cuisine, rating, image, delivery_fee
		FROM restaurants
		WHERE id = $1`, id,
	).Scan(&rest.ID, &rest.Name, &cuisine, &rating, &image, &deliveryFee)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rest.Cuisine = cuisine.String
	rest.Rating = rating.Float64
	rest.Image = image.String
	rest.DeliveryFee = deliveryFee.String
	return &rest, nil
}

func (r *PostgresMenuRepository) ListMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, restaurant_id, name, price, category, description, image, available, created_at, updated_at
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY category, name`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresMenuRepository) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, restaurant_id, name, price, category, description, image, available, created_at, updated_at
		FROM menu_items
		WHERE id = $1`, id)

	item, err := scanMenuItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *PostgresMenuRepository) CreateMenuItem(ctx context.Context, restaurantID string, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	id := uuid.NewString()

	r.logger.Debug("creating menu item",
		zap.String("restaurant_id", restaurantID),
		zap.String("item_id", id),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (id, restaurant_id, name, price, category, description, image, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, restaurant_id, name, price, category, description, image, available, created_at, updated_at`,
		id, restaurantID, req.Name, req.Price, req.Category, req.Description, req.Image, req.Available,
	)

	return scanMenuItem(row)
}

func (r *PostgresMenuRepository) UpdateMenuItem(ctx context.Context, restaurantID, itemID string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name        = COALESCE($3, name),
		    price       = COALESCE($4, price),
		    category    = COALESCE($5, category),
		    description = COALESCE($6, description),
		    image       = COALESCE($7, image),
		    available   = COALESCE($8, available),
		    updated_at  = NOW()
		WHERE id = $1 AND restaurant_id = $2
		RETURNING id, restaurant_id, name, price, category, description, image, available, created_at, updated_at`,
		itemID, restaurantID, req.Name, req.Price, req.Category, req.Description, req.Image, req.Available,
	)

	item, err := scanMenuItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *PostgresMenuRepository) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2`,
		itemID, restaurantID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Ping reports whether the database is reachable, for readiness checks.
func (r *PostgresMenuRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row rowScanner) (*models.MenuItem, error) {
	var item models.MenuItem
	var category, description, image sql.NullString

	err := row.Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.Price,
		&category,
		&description,
		&image,
		&item.Available,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Category = category.String
	item.Description = description.String
	item.Image = image.String
	return &item, nil
}
