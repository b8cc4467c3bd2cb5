package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Listing validation errors.
var (
	ErrEmptyListingOwner = errors.New("listing must reference an owner")
	ErrEmptyListingName  = errors.New("listing name cannot be empty")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrEmptyDescription  = errors.New("description cannot be empty")
)

// Product is a marketplace item listed by a Vendor.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewProduct creates a product owned by the given vendor.
// Returns an error if validation fails.
func NewProduct(vendorID uuid.UUID, name, description string, price decimal.Decimal, imageURL string) (*Product, error) {
	now := time.Now().UTC()
	product := &Product{
		ID:          uuid.New(),
		VendorID:    vendorID,
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks if the Product has valid data.
func (p *Product) Validate() error {
	if p.VendorID == uuid.Nil {
		return ErrEmptyListingOwner
	}
	if p.Name == "" {
		return ErrEmptyListingName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Service is an offering listed by a Tailor or Fashion_Designer.
type Service struct {
	ID          uuid.UUID       `json:"id"`
	ProviderID  uuid.UUID       `json:"provider_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewService creates an available service owned by the given provider.
// Returns an error if validation fails.
func NewService(providerID uuid.UUID, title, description string, price decimal.Decimal) (*Service, error) {
	now := time.Now().UTC()
	service := &Service{
		ID:          uuid.New(),
		ProviderID:  providerID,
		Title:       title,
		Description: description,
		Price:       price,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.Validate(); err != nil {
		return nil, err
	}

	return service, nil
}

// Validate checks if the Service has valid data.
func (s *Service) Validate() error {
	if s.ProviderID == uuid.Nil {
		return ErrEmptyListingOwner
	}
	if s.Title == "" {
		return ErrEmptyListingName
	}
	if s.Description == "" {
		return ErrEmptyDescription
	}
	if s.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
