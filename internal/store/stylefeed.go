package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
)

// StyleFeedStore defines persistence for style feed posts.
type StyleFeedStore interface {
	// Create saves a new post.
	Create(ctx context.Context, post *domain.StyleFeedPost) error

	// GetByID retrieves a post by ID. Posts are publicly readable.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StyleFeedPost, error)

	// List returns posts most recent first. Limit and offset of zero mean
	// "no limit" and "from the start" respectively.
	List(ctx context.Context, limit, offset int) ([]*domain.StyleFeedPost, error)

	// Update modifies a post's caption and image URL scoped to its author.
	// Returns ErrPostNotFound when no owned row matches.
	Update(ctx context.Context, post *domain.StyleFeedPost) error

	// Delete removes a post owned by the author. Returns ErrPostNotFound
	// when no owned row matches.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a new store instance bound to the provided transaction.
	WithTx(tx *sql.Tx) StyleFeedStore
}
