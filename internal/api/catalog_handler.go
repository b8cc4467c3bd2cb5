package api

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tailorent/tailorent-api/internal/api/shared"
	"github.com/tailorent/tailorent-api/internal/service"
	"github.com/tailorent/tailorent-api/internal/store"
)

// Listing pagination bounds.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CatalogHandler handles marketplace catalog API requests: products, service
// offerings, and the style feed.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler with the given dependencies.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// parseListingFilter builds a ListingFilter from the query string. Unparsable
// prices and unknown orderings are ignored rather than rejected.
func parseListingFilter(r *http.Request) store.ListingFilter {
	q := r.URL.Query()

	filter := store.ListingFilter{
		Search: q.Get("search"),
	}

	if raw := q.Get("min_price"); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil && !price.IsNegative() {
			filter.MinPrice = &price
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		if price, err := decimal.NewFromString(raw); err == nil && !price.IsNegative() {
			filter.MaxPrice = &price
		}
	}

	switch q.Get("order_by") {
	case "price_asc":
		filter.OrderBy = store.OrderPriceAsc
	case "price_desc":
		filter.OrderBy = store.OrderPriceDesc
	default:
		filter.OrderBy = store.OrderNewest
	}

	filter.Limit, filter.Offset = parsePagination(r)
	return filter
}

// parsePagination reads limit and offset query parameters with sane bounds.
func parsePagination(r *http.Request) (limit, offset int) {
	q := r.URL.Query()

	limit = defaultPageSize
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if raw := q.Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}

	return limit, offset
}

// Products

// CreateProduct handles POST /products.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), userID, role, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, product)
}

// GetProduct handles GET /products/{id}. Public.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), productID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// ListProducts handles GET /products. Public, filterable.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context(), parseListingFilter(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, products)
}

// ListMyProducts handles GET /products/mine.
func (h *CatalogHandler) ListMyProducts(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	products, err := h.catalogService.ListVendorProducts(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, products)
}

// UpdateProduct handles PUT /products/{id}.
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID, _, productID, ok := requireAuthAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), productID, userID, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/{id}.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, _, productID, ok := requireAuthAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), productID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Product deleted"})
}

// Services

// CreateService handles POST /services.
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req ServiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	svc, err := h.catalogService.CreateService(r.Context(), userID, role, service.ServiceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Available:   available,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, svc)
}

// GetService handles GET /services/{id}. Public.
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	svc, err := h.catalogService.GetService(r.Context(), serviceID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, svc)
}

// ListServices handles GET /services. Public, filterable; only available
// services are listed.
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.ListServices(r.Context(), parseListingFilter(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, services)
}

// ListMyServices handles GET /services/mine.
func (h *CatalogHandler) ListMyServices(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := requireAuth(w, r)
	if !ok {
		return
	}

	services, err := h.catalogService.ListProviderServices(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, services)
}

// UpdateService handles PUT /services/{id}.
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	userID, _, serviceID, ok := requireAuthAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ServiceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	svc, err := h.catalogService.UpdateService(r.Context(), serviceID, userID, service.ServiceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Available:   available,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, svc)
}

// DeleteService handles DELETE /services/{id}.
func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	userID, _, serviceID, ok := requireAuthAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteService(r.Context(), serviceID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Service deleted"})
}

// Style feed

// CreatePost handles POST /style-feed.
func (h *CatalogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req PostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.catalogService.CreatePost(r.Context(), userID, role, service.PostInput{
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, post)
}

// GetPost handles GET /style-feed/{id}. Public.
func (h *CatalogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	post, err := h.catalogService.GetPost(r.Context(), postID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// ListPosts handles GET /style-feed. Public, most recent first.
func (h *CatalogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	posts, err := h.catalogService.ListPosts(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, posts)
}

// UpdatePost handles PUT /style-feed/{id}.
func (h *CatalogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, _, postID, ok := requireAuthAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req PostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.catalogService.UpdatePost(r.Context(), postID, userID, service.PostInput{
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, post)
}

// DeletePost handles DELETE /style-feed/{id}.
func (h *CatalogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, _, postID, ok := requireAuthAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeletePost(r.Context(), postID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Post deleted"})
}
