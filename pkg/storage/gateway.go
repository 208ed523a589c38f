package storage

import (
	"context"
	"errors"

	"gitlab.connectwisedev.com/product-management/models"
)

// ErrNotFound is returned when no product exists for the requested id.
var ErrNotFound = errors.New("product not found")

// Gateway abstracts the durable key-value table holding products.
// Implementations must treat Product.ID as the primary key.
type Gateway interface {
	// Put stores a new product under its id.
	Put(ctx context.Context, p models.Product) error
	// Get returns the product for id, or ErrNotFound.
	Get(ctx context.Context, id string) (models.Product, error)
	// Scan returns every product in the table. Never returns nil on success.
	Scan(ctx context.Context) ([]models.Product, error)
	// Update fully replaces the stored fields for p.ID.
	// Returns ErrNotFound when no product with that id exists.
	Update(ctx context.Context, p models.Product) error
	// Delete removes the product for id. Deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) error
}
