package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/platform/logger"
	"github.com/tailorent/tailorent-api/internal/store"
)

// listingOrderClause maps a ListingFilter.OrderBy value to an ORDER BY
// expression. Unknown values fall back to newest-first.
func listingOrderClause(orderBy string) string {
	switch orderBy {
	case store.OrderPriceAsc:
		return "price ASC, created_at DESC"
	case store.OrderPriceDesc:
		return "price DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

// buildListingFilter appends the filter's WHERE conditions and trailing
// ORDER BY / LIMIT / OFFSET clauses to a query. The returned args continue
// from the given placeholder index.
func buildListingFilter(filter store.ListingFilter, searchColumns []string, argIndex int) (string, []any) {
	var sb strings.Builder
	var args []any

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		matches := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			matches = append(matches, fmt.Sprintf("%s ILIKE $%d", col, argIndex))
			args = append(args, pattern)
			argIndex++
		}
		sb.WriteString(" AND (" + strings.Join(matches, " OR ") + ")")
	}
	if filter.MinPrice != nil {
		sb.WriteString(fmt.Sprintf(" AND price >= $%d", argIndex))
		args = append(args, filter.MinPrice.String())
		argIndex++
	}
	if filter.MaxPrice != nil {
		sb.WriteString(fmt.Sprintf(" AND price <= $%d", argIndex))
		args = append(args, filter.MaxPrice.String())
		argIndex++
	}

	sb.WriteString(" ORDER BY " + listingOrderClause(filter.OrderBy))

	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
		args = append(args, filter.Limit)
		argIndex++
	}
	if filter.Offset > 0 {
		sb.WriteString(fmt.Sprintf(" OFFSET $%d", argIndex))
		args = append(args, filter.Offset)
	}

	return sb.String(), args
}

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the
// ProductStore interface.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

var _ store.ProductStore = (*PostgresProductStore)(nil)

// WithTx implements store.ProductStore.WithTx
func (s *PostgresProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &PostgresProductStore{
		db:     tx,
		logger: s.logger,
	}
}

const productColumns = `id, vendor_id, name, description, price, image_url, created_at, updated_at`

// Create implements store.ProductStore.Create
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ID.String()))
		return err
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.VendorID,
		product.Name,
		nullString(product.Description),
		product.Price.String(),
		nullString(product.ImageURL),
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create product",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ID.String()))
		return MapError(err)
	}

	log.Info("product created",
		slog.String("product_id", product.ID.String()),
		slog.String("vendor_id", product.VendorID.String()))
	return nil
}

// GetByID implements store.ProductStore.GetByID
func (s *PostgresProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.String("product_id", id.String()))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product", slog.String("error", err.Error()))
		return nil, err
	}

	return product, nil
}

// ListByVendor implements store.ProductStore.ListByVendor
func (s *PostgresProductStore) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE vendor_id = $1
		ORDER BY created_at DESC
	`
	return s.listProducts(ctx, query, vendorID)
}

// ListPublic implements store.ProductStore.ListPublic
func (s *PostgresProductStore) ListPublic(ctx context.Context, filter store.ListingFilter) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE TRUE`
	clause, args := buildListingFilter(filter, []string{"name", "description"}, 1)
	return s.listProducts(ctx, query+clause, args...)
}

func (s *PostgresProductStore) listProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", slog.String("error", err.Error()))
			return nil, err
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return products, nil
}

// Update implements store.ProductStore.Update
func (s *PostgresProductStore) Update(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during update",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ID.String()))
		return err
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, image_url = $4, updated_at = $5
		WHERE id = $6 AND vendor_id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		product.Name,
		nullString(product.Description),
		product.Price.String(),
		nullString(product.ImageURL),
		product.UpdatedAt,
		product.ID,
		product.VendorID,
	)
	if err != nil {
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.String("product_id", product.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrProductNotFound); err != nil {
		log.Debug("no owned product matched for update",
			slog.String("product_id", product.ID.String()))
		return err
	}

	log.Info("product updated", slog.String("product_id", product.ID.String()))
	return nil
}

// Delete implements store.ProductStore.Delete
func (s *PostgresProductStore) Delete(ctx context.Context, id, vendorID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM products WHERE id = $1 AND vendor_id = $2`,
		id,
		vendorID,
	)
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrProductNotFound); err != nil {
		log.Debug("product not found for delete", slog.String("product_id", id.String()))
		return err
	}

	log.Info("product deleted", slog.String("product_id", id.String()))
	return nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	var description, imageURL sql.NullString
	var price string

	err := row.Scan(
		&product.ID,
		&product.VendorID,
		&product.Name,
		&description,
		&price,
		&imageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := decimalFromDB(price)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	product.Price = parsed
	product.ImageURL = imageURL.String

	return &product, nil
}

// PostgresServiceStore implements the store.ServiceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresServiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresServiceStore creates a new PostgreSQL implementation of the
// ServiceStore interface.
func NewPostgresServiceStore(db store.DBTX, logger *slog.Logger) *PostgresServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "service_store")),
	}
}

var _ store.ServiceStore = (*PostgresServiceStore)(nil)

// WithTx implements store.ServiceStore.WithTx
func (s *PostgresServiceStore) WithTx(tx *sql.Tx) store.ServiceStore {
	return &PostgresServiceStore{
		db:     tx,
		logger: s.logger,
	}
}

const serviceColumns = `id, provider_id, title, description, price, available, created_at, updated_at`

// Create implements store.ServiceStore.Create
func (s *PostgresServiceStore) Create(ctx context.Context, service *domain.Service) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := service.Validate(); err != nil {
		log.Warn("service validation failed during create",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return err
	}

	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		service.ID,
		service.ProviderID,
		service.Title,
		service.Description,
		service.Price.String(),
		service.Available,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create service",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return MapError(err)
	}

	log.Info("service created",
		slog.String("service_id", service.ID.String()),
		slog.String("provider_id", service.ProviderID.String()))
	return nil
}

// GetByID implements store.ServiceStore.GetByID
func (s *PostgresServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`

	service, err := scanService(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("service not found", slog.String("service_id", id.String()))
			return nil, store.ErrServiceNotFound
		}
		log.Error("failed to get service", slog.String("error", err.Error()))
		return nil, err
	}

	return service, nil
}

// ListByProvider implements store.ServiceStore.ListByProvider
func (s *PostgresServiceStore) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*domain.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`
	return s.listServices(ctx, query, providerID)
}

// ListPublic implements store.ServiceStore.ListPublic
// Only available services appear in public listings.
func (s *PostgresServiceStore) ListPublic(ctx context.Context, filter store.ListingFilter) ([]*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE available`
	clause, args := buildListingFilter(filter, []string{"title", "description"}, 1)
	return s.listServices(ctx, query+clause, args...)
}

func (s *PostgresServiceStore) listServices(ctx context.Context, query string, args ...any) ([]*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query services", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	services := []*domain.Service{}
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			log.Error("failed to scan service row", slog.String("error", err.Error()))
			return nil, err
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return services, nil
}

// Update implements store.ServiceStore.Update
func (s *PostgresServiceStore) Update(ctx context.Context, service *domain.Service) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := service.Validate(); err != nil {
		log.Warn("service validation failed during update",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return err
	}

	query := `
		UPDATE services
		SET title = $1, description = $2, price = $3, available = $4, updated_at = $5
		WHERE id = $6 AND provider_id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		service.Title,
		service.Description,
		service.Price.String(),
		service.Available,
		service.UpdatedAt,
		service.ID,
		service.ProviderID,
	)
	if err != nil {
		log.Error("failed to update service",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrServiceNotFound); err != nil {
		log.Debug("no owned service matched for update",
			slog.String("service_id", service.ID.String()))
		return err
	}

	log.Info("service updated", slog.String("service_id", service.ID.String()))
	return nil
}

// Delete implements store.ServiceStore.Delete
func (s *PostgresServiceStore) Delete(ctx context.Context, id, providerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM services WHERE id = $1 AND provider_id = $2`,
		id,
		providerID,
	)
	if err != nil {
		log.Error("failed to delete service",
			slog.String("error", err.Error()),
			slog.String("service_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrServiceNotFound); err != nil {
		log.Debug("service not found for delete", slog.String("service_id", id.String()))
		return err
	}

	log.Info("service deleted", slog.String("service_id", id.String()))
	return nil
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var price string

	err := row.Scan(
		&service.ID,
		&service.ProviderID,
		&service.Title,
		&service.Description,
		&price,
		&service.Available,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := decimalFromDB(price)
	if err != nil {
		return nil, err
	}
	service.Price = parsed

	return &service, nil
}

// decimalFromDB parses a NUMERIC column value scanned as text.
func decimalFromDB(value string) (decimal.Decimal, error) {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse price from database: %w", err)
	}
	return parsed, nil
}
