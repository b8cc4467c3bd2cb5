package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tailorent/tailorent-api/internal/domain"
)

// Listing ordering values accepted by ListingFilter.OrderBy.
const (
	OrderNewest    = "newest"
	OrderPriceAsc  = "price_asc"
	OrderPriceDesc = "price_desc"
)

// ListingFilter narrows and orders public catalog listings. Zero values mean
// "no constraint". Search matches name/title and description,
// case-insensitively.
type ListingFilter struct {
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	OrderBy  string
	Limit    int
	Offset   int
}

// ProductStore defines persistence for vendor products.
type ProductStore interface {
	// Create saves a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID. Products are publicly readable, so
	// no ownership scoping applies. Returns ErrProductNotFound if the product
	// does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// ListByVendor returns the vendor's products, newest first.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*domain.Product, error)

	// ListPublic returns products matching the filter.
	ListPublic(ctx context.Context, filter ListingFilter) ([]*domain.Product, error)

	// Update modifies a product owned by the vendor. Returns
	// ErrProductNotFound when no owned row matches.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product owned by the vendor. Returns
	// ErrProductNotFound when no owned row matches.
	Delete(ctx context.Context, id, vendorID uuid.UUID) error

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) ProductStore
}

// ServiceStore defines persistence for professional service offerings.
type ServiceStore interface {
	// Create saves a new service.
	Create(ctx context.Context, service *domain.Service) error

	// GetByID retrieves a service by ID. Services are publicly readable.
	// Returns ErrServiceNotFound if the service does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)

	// ListByProvider returns the provider's services, newest first.
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Service, error)

	// ListPublic returns available services matching the filter.
	ListPublic(ctx context.Context, filter ListingFilter) ([]*domain.Service, error)

	// Update modifies a service owned by the provider. Returns
	// ErrServiceNotFound when no owned row matches.
	Update(ctx context.Context, service *domain.Service) error

	// Delete removes a service owned by the provider. Returns
	// ErrServiceNotFound when no owned row matches.
	Delete(ctx context.Context, id, providerID uuid.UUID) error

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) ServiceStore
}
