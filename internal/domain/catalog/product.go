package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrProductNotFound indicates the product does not exist in the catalog
var ErrProductNotFound = errors.New("catalog: product not found")

// Product is a catalog product as read from the catalog store. SizeText and
// Tagline are free-text marketing strings from which a physical size and
// weight are heuristically parsed at sync time.
type Product struct {
	ID          uuid.UUID
	SKU         string
	Name        string
	Price       decimal.Decimal
	Description string
	Tagline     string
	SizeText    string
	Category    string
	ImageURL    string
}

// Repository provides read access to the product catalog
type Repository interface {
	// FindByID retrieves a product by its identifier
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindAll retrieves the full catalog
	FindAll(ctx context.Context) ([]Product, error)
}
