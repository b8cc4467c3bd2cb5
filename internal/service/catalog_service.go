package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/policy"
	"github.com/tailorent/tailorent-api/internal/store"
)

// ProductInput carries the vendor-editable product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}

// ServiceInput carries the provider-editable service fields.
type ServiceInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Available   bool
}

// PostInput carries the author-editable style feed post fields.
type PostInput struct {
	ImageURL string
	Caption  string
}

// CatalogService provides the marketplace catalog: vendor products,
// professional service offerings, and the public style feed. Reads are
// public; writes are scoped to the owner and gated by role capability.
type CatalogService interface {
	// CreateProduct lists a new product for the vendor.
	CreateProduct(ctx context.Context, vendorID uuid.UUID, role domain.Role, input ProductInput) (*domain.Product, error)

	// GetProduct retrieves a product. Public.
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// ListProducts returns products matching the filter. Public.
	ListProducts(ctx context.Context, filter store.ListingFilter) ([]*domain.Product, error)

	// ListVendorProducts returns the vendor's own products.
	ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]*domain.Product, error)

	// UpdateProduct edits a product owned by the vendor.
	UpdateProduct(ctx context.Context, id, vendorID uuid.UUID, input ProductInput) (*domain.Product, error)

	// DeleteProduct removes a product owned by the vendor.
	DeleteProduct(ctx context.Context, id, vendorID uuid.UUID) error

	// CreateService lists a new service offering for the professional.
	CreateService(ctx context.Context, providerID uuid.UUID, role domain.Role, input ServiceInput) (*domain.Service, error)

	// GetService retrieves a service offering. Public.
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)

	// ListServices returns available services matching the filter. Public.
	ListServices(ctx context.Context, filter store.ListingFilter) ([]*domain.Service, error)

	// ListProviderServices returns the provider's own services.
	ListProviderServices(ctx context.Context, providerID uuid.UUID) ([]*domain.Service, error)

	// UpdateService edits a service owned by the provider.
	UpdateService(ctx context.Context, id, providerID uuid.UUID, input ServiceInput) (*domain.Service, error)

	// DeleteService removes a service owned by the provider.
	DeleteService(ctx context.Context, id, providerID uuid.UUID) error

	// CreatePost publishes a style feed post. Any authenticated user may post.
	CreatePost(ctx context.Context, userID uuid.UUID, role domain.Role, input PostInput) (*domain.StyleFeedPost, error)

	// GetPost retrieves a post. Public.
	GetPost(ctx context.Context, id uuid.UUID) (*domain.StyleFeedPost, error)

	// ListPosts returns posts most recent first. Public.
	ListPosts(ctx context.Context, limit, offset int) ([]*domain.StyleFeedPost, error)

	// UpdatePost edits a post owned by its author.
	UpdatePost(ctx context.Context, id, userID uuid.UUID, input PostInput) (*domain.StyleFeedPost, error)

	// DeletePost removes a post owned by its author.
	DeletePost(ctx context.Context, id, userID uuid.UUID) error
}

// CatalogServiceImpl implements the CatalogService interface
type CatalogServiceImpl struct {
	productStore store.ProductStore
	serviceStore store.ServiceStore
	postStore    store.StyleFeedStore
	logger       *slog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	productStore store.ProductStore,
	serviceStore store.ServiceStore,
	postStore store.StyleFeedStore,
	logger *slog.Logger,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		productStore: productStore,
		serviceStore: serviceStore,
		postStore:    postStore,
		logger:       logger.With("component", "catalog_service"),
	}
}

var _ CatalogService = (*CatalogServiceImpl)(nil)

// CreateProduct lists a new product for the vendor.
func (s *CatalogServiceImpl) CreateProduct(ctx context.Context, vendorID uuid.UUID, role domain.Role, input ProductInput) (*domain.Product, error) {
	if err := policy.Check(role, policy.CapabilityListProducts); err != nil {
		return nil, err
	}

	product, err := domain.NewProduct(vendorID, input.Name, input.Description, input.Price, input.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.productStore.Create(ctx, product); err != nil {
		s.logger.Error("failed to create product", "error", err, "vendor_id", vendorID)
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product.
func (s *CatalogServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productStore.GetByID(ctx, id)
}

// ListProducts returns products matching the filter.
func (s *CatalogServiceImpl) ListProducts(ctx context.Context, filter store.ListingFilter) ([]*domain.Product, error) {
	return s.productStore.ListPublic(ctx, filter)
}

// ListVendorProducts returns the vendor's own products.
func (s *CatalogServiceImpl) ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]*domain.Product, error) {
	return s.productStore.ListByVendor(ctx, vendorID)
}

// UpdateProduct edits a product owned by the vendor.
func (s *CatalogServiceImpl) UpdateProduct(ctx context.Context, id, vendorID uuid.UUID, input ProductInput) (*domain.Product, error) {
	product, err := s.productStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.VendorID != vendorID {
		// Same answer as a missing product.
		return nil, store.ErrProductNotFound
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.ImageURL = input.ImageURL
	product.UpdatedAt = time.Now().UTC()

	if err := s.productStore.Update(ctx, product); err != nil {
		s.logger.Error("failed to update product", "error", err, "product_id", id)
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product owned by the vendor.
func (s *CatalogServiceImpl) DeleteProduct(ctx context.Context, id, vendorID uuid.UUID) error {
	return s.productStore.Delete(ctx, id, vendorID)
}

// CreateService lists a new service offering for the professional.
func (s *CatalogServiceImpl) CreateService(ctx context.Context, providerID uuid.UUID, role domain.Role, input ServiceInput) (*domain.Service, error) {
	if err := policy.Check(role, policy.CapabilityOfferServices); err != nil {
		return nil, err
	}

	service, err := domain.NewService(providerID, input.Title, input.Description, input.Price)
	if err != nil {
		return nil, err
	}
	service.Available = input.Available

	if err := s.serviceStore.Create(ctx, service); err != nil {
		s.logger.Error("failed to create service", "error", err, "provider_id", providerID)
		return nil, err
	}

	return service, nil
}

// GetService retrieves a service offering.
func (s *CatalogServiceImpl) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return s.serviceStore.GetByID(ctx, id)
}

// ListServices returns available services matching the filter.
func (s *CatalogServiceImpl) ListServices(ctx context.Context, filter store.ListingFilter) ([]*domain.Service, error) {
	return s.serviceStore.ListPublic(ctx, filter)
}

// ListProviderServices returns the provider's own services.
func (s *CatalogServiceImpl) ListProviderServices(ctx context.Context, providerID uuid.UUID) ([]*domain.Service, error) {
	return s.serviceStore.ListByProvider(ctx, providerID)
}

// UpdateService edits a service owned by the provider.
func (s *CatalogServiceImpl) UpdateService(ctx context.Context, id, providerID uuid.UUID, input ServiceInput) (*domain.Service, error) {
	service, err := s.serviceStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service.ProviderID != providerID {
		return nil, store.ErrServiceNotFound
	}

	service.Title = input.Title
	service.Description = input.Description
	service.Price = input.Price
	service.Available = input.Available
	service.UpdatedAt = time.Now().UTC()

	if err := s.serviceStore.Update(ctx, service); err != nil {
		s.logger.Error("failed to update service", "error", err, "service_id", id)
		return nil, err
	}

	return service, nil
}

// DeleteService removes a service owned by the provider.
func (s *CatalogServiceImpl) DeleteService(ctx context.Context, id, providerID uuid.UUID) error {
	return s.serviceStore.Delete(ctx, id, providerID)
}

// CreatePost publishes a style feed post.
func (s *CatalogServiceImpl) CreatePost(ctx context.Context, userID uuid.UUID, role domain.Role, input PostInput) (*domain.StyleFeedPost, error) {
	if err := policy.Check(role, policy.CapabilityPostStyleFeed); err != nil {
		return nil, err
	}

	post, err := domain.NewStyleFeedPost(userID, input.ImageURL, input.Caption)
	if err != nil {
		return nil, err
	}

	if err := s.postStore.Create(ctx, post); err != nil {
		s.logger.Error("failed to create style feed post", "error", err, "user_id", userID)
		return nil, err
	}

	return post, nil
}

// GetPost retrieves a post.
func (s *CatalogServiceImpl) GetPost(ctx context.Context, id uuid.UUID) (*domain.StyleFeedPost, error) {
	return s.postStore.GetByID(ctx, id)
}

// ListPosts returns posts most recent first.
func (s *CatalogServiceImpl) ListPosts(ctx context.Context, limit, offset int) ([]*domain.StyleFeedPost, error) {
	return s.postStore.List(ctx, limit, offset)
}

// UpdatePost edits a post owned by its author.
func (s *CatalogServiceImpl) UpdatePost(ctx context.Context, id, userID uuid.UUID, input PostInput) (*domain.StyleFeedPost, error) {
	post, err := s.postStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, store.ErrPostNotFound
	}

	post.ImageURL = input.ImageURL
	post.Caption = input.Caption

	if err := s.postStore.Update(ctx, post); err != nil {
		s.logger.Error("failed to update style feed post", "error", err, "post_id", id)
		return nil, err
	}

	return post, nil
}

// DeletePost removes a post owned by its author.
func (s *CatalogServiceImpl) DeletePost(ctx context.Context, id, userID uuid.UUID) error {
	return s.postStore.Delete(ctx, id, userID)
}
