package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/policy"
	"github.com/tailorent/tailorent-api/internal/store"
)

func newTestCatalogService(products *mockProductStore, services *mockServiceStore, posts *mockStyleFeedStore) *CatalogServiceImpl {
	return NewCatalogService(products, services, posts, testLogger())
}

func testProductInput() ProductInput {
	return ProductInput{
		Name:        "Ankara fabric, 6 yards",
		Description: "Wax print, red and gold",
		Price:       decimal.NewFromInt(15000),
		ImageURL:    "https://cdn.example.com/ankara.jpg",
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	vendorID := uuid.New()

	t.Run("vendor lists a product", func(t *testing.T) {
		svc := newTestCatalogService(newMockProductStore(), newMockServiceStore(), newMockStyleFeedStore())

		product, err := svc.CreateProduct(ctx, vendorID, domain.RoleVendor, testProductInput())
		require.NoError(t, err)
		assert.Equal(t, vendorID, product.VendorID)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(15000)))
	})

	t.Run("only vendors may list products", func(t *testing.T) {
		svc := newTestCatalogService(newMockProductStore(), newMockServiceStore(), newMockStyleFeedStore())

		_, err := svc.CreateProduct(ctx, vendorID, domain.RoleTailor, testProductInput())
		assert.ErrorIs(t, err, policy.ErrForbidden)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		svc := newTestCatalogService(newMockProductStore(), newMockServiceStore(), newMockStyleFeedStore())

		input := testProductInput()
		input.Price = decimal.NewFromInt(-1)
		_, err := svc.CreateProduct(ctx, vendorID, domain.RoleVendor, input)
		assert.ErrorIs(t, err, domain.ErrNegativePrice)
	})
}

func TestUpdateProductOwnership(t *testing.T) {
	ctx := context.Background()
	vendorID := uuid.New()

	svc := newTestCatalogService(newMockProductStore(), newMockServiceStore(), newMockStyleFeedStore())
	product, err := svc.CreateProduct(ctx, vendorID, domain.RoleVendor, testProductInput())
	require.NoError(t, err)

	t.Run("owner edits", func(t *testing.T) {
		input := testProductInput()
		input.Name = "Ankara fabric, 12 yards"
		updated, err := svc.UpdateProduct(ctx, product.ID, vendorID, input)
		require.NoError(t, err)
		assert.Equal(t, "Ankara fabric, 12 yards", updated.Name)
	})

	t.Run("someone else's product reads as missing", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, product.ID, uuid.New(), testProductInput())
		assert.ErrorIs(t, err, store.ErrProductNotFound)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	vendorID := uuid.New()

	svc := newTestCatalogService(newMockProductStore(), newMockServiceStore(), newMockStyleFeedStore())
	product, err := svc.CreateProduct(ctx, vendorID, domain.RoleVendor, testProductInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, product.ID, uuid.New()), store.ErrProductNotFound)
	require.NoError(t, svc.DeleteProduct(ctx, product.ID, vendorID))

	_, err = svc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestCreateService(t *testing.T) {
	ctx := context.Background()
	providerID := uuid.New()

	input := ServiceInput{
		Title:       "Bespoke suit tailoring",
		Description: "Three fittings included",
		Price:       decimal.NewFromInt(45000),
		Available:   true,
	}

	t.Run("professionals may offer services", func(t *testing.T) {
		svc := newTestCatalogService(newMockProductStore(), newMockServiceStore(), newMockStyleFeedStore())

		for _, role := range []domain.Role{domain.RoleTailor, domain.RoleFashionDesigner} {
			service, err := svc.CreateService(ctx, providerID, role, input)
			require.NoError(t, err)
			assert.True(t, service.Available)
		}
	})

	t.Run("vendors may not", func(t *testing.T) {
		svc := newTestCatalogService(newMockProductStore(), newMockServiceStore(), newMockStyleFeedStore())

		_, err := svc.CreateService(ctx, providerID, domain.RoleVendor, input)
		assert.ErrorIs(t, err, policy.ErrForbidden)
	})
}

func TestListServicesHidesUnavailable(t *testing.T) {
	ctx := context.Background()
	providerID := uuid.New()

	svc := newTestCatalogService(newMockProductStore(), newMockServiceStore(), newMockStyleFeedStore())

	available := ServiceInput{Title: "Bespoke suit", Description: "d", Price: decimal.NewFromInt(45000), Available: true}
	hidden := ServiceInput{Title: "Paused offering", Description: "d", Price: decimal.NewFromInt(10000), Available: false}

	_, err := svc.CreateService(ctx, providerID, domain.RoleTailor, available)
	require.NoError(t, err)
	_, err = svc.CreateService(ctx, providerID, domain.RoleTailor, hidden)
	require.NoError(t, err)

	public, err := svc.ListServices(ctx, store.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, public, 1)

	// The provider still sees both.
	mine, err := svc.ListProviderServices(ctx, providerID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestStyleFeedPosts(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	svc := newTestCatalogService(newMockProductStore(), newMockServiceStore(), newMockStyleFeedStore())

	post, err := svc.CreatePost(ctx, userID, domain.RoleCustomer, PostInput{
		ImageURL: "https://cdn.example.com/look.jpg",
		Caption:  "Owambe ready",
	})
	require.NoError(t, err)

	t.Run("image is required", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, userID, domain.RoleCustomer, PostInput{Caption: "no image"})
		assert.ErrorIs(t, err, domain.ErrEmptyImageURL)
	})

	t.Run("author edits own post", func(t *testing.T) {
		updated, err := svc.UpdatePost(ctx, post.ID, userID, PostInput{
			ImageURL: post.ImageURL,
			Caption:  "Owambe ready!",
		})
		require.NoError(t, err)
		assert.Equal(t, "Owambe ready!", updated.Caption)
	})

	t.Run("someone else's post reads as missing", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, post.ID, uuid.New(), PostInput{ImageURL: post.ImageURL})
		assert.ErrorIs(t, err, store.ErrPostNotFound)

		assert.ErrorIs(t, svc.DeletePost(ctx, post.ID, uuid.New()), store.ErrPostNotFound)
	})

	t.Run("listed publicly", func(t *testing.T) {
		posts, err := svc.ListPosts(ctx, 0, 0)
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})
}
