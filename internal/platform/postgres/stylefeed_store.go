package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/domain"
	"github.com/tailorent/tailorent-api/internal/platform/logger"
	"github.com/tailorent/tailorent-api/internal/store"
)

// PostgresStyleFeedStore implements the store.StyleFeedStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStyleFeedStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStyleFeedStore creates a new PostgreSQL implementation of the
// StyleFeedStore interface.
func NewPostgresStyleFeedStore(db store.DBTX, logger *slog.Logger) *PostgresStyleFeedStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStyleFeedStore{
		db:     db,
		logger: logger.With(slog.String("component", "style_feed_store")),
	}
}

var _ store.StyleFeedStore = (*PostgresStyleFeedStore)(nil)

// WithTx implements store.StyleFeedStore.WithTx
func (s *PostgresStyleFeedStore) WithTx(tx *sql.Tx) store.StyleFeedStore {
	return &PostgresStyleFeedStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.StyleFeedStore.Create
func (s *PostgresStyleFeedStore) Create(ctx context.Context, post *domain.StyleFeedPost) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("style feed post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	query := `
		INSERT INTO style_feed_posts (id, user_id, image_url, caption, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.UserID,
		post.ImageURL,
		post.Caption,
		post.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create style feed post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return MapError(err)
	}

	log.Info("style feed post created",
		slog.String("post_id", post.ID.String()),
		slog.String("user_id", post.UserID.String()))
	return nil
}

// GetByID implements store.StyleFeedStore.GetByID
func (s *PostgresStyleFeedStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StyleFeedPost, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, image_url, caption, created_at
		FROM style_feed_posts
		WHERE id = $1
	`

	var post domain.StyleFeedPost
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.UserID,
		&post.ImageURL,
		&post.Caption,
		&post.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("style feed post not found", slog.String("post_id", id.String()))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get style feed post", slog.String("error", err.Error()))
		return nil, err
	}

	return &post, nil
}

// List implements store.StyleFeedStore.List
// Posts are always returned most recent first.
func (s *PostgresStyleFeedStore) List(ctx context.Context, limit, offset int) ([]*domain.StyleFeedPost, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, image_url, caption, created_at
		FROM style_feed_posts
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
		if offset > 0 {
			query += ` OFFSET $2`
			args = append(args, offset)
		}
	} else if offset > 0 {
		query += ` OFFSET $1`
		args = append(args, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query style feed posts", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	posts := []*domain.StyleFeedPost{}
	for rows.Next() {
		var post domain.StyleFeedPost
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.ImageURL,
			&post.Caption,
			&post.CreatedAt,
		); err != nil {
			log.Error("failed to scan style feed post row", slog.String("error", err.Error()))
			return nil, err
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return posts, nil
}

// Update implements store.StyleFeedStore.Update
func (s *PostgresStyleFeedStore) Update(ctx context.Context, post *domain.StyleFeedPost) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("style feed post validation failed during update",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	query := `
		UPDATE style_feed_posts
		SET image_url = $1, caption = $2
		WHERE id = $3 AND user_id = $4
	`
	result, err := s.db.ExecContext(ctx, query, post.ImageURL, post.Caption, post.ID, post.UserID)
	if err != nil {
		log.Error("failed to update style feed post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		log.Debug("no owned post matched for update",
			slog.String("post_id", post.ID.String()))
		return err
	}

	log.Info("style feed post updated", slog.String("post_id", post.ID.String()))
	return nil
}

// Delete implements store.StyleFeedStore.Delete
func (s *PostgresStyleFeedStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM style_feed_posts WHERE id = $1 AND user_id = $2`,
		id,
		userID,
	)
	if err != nil {
		log.Error("failed to delete style feed post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
		log.Debug("style feed post not found for delete", slog.String("post_id", id.String()))
		return err
	}

	log.Info("style feed post deleted", slog.String("post_id", id.String()))
	return nil
}
