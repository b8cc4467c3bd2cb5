package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyImageURL is returned when a style feed post has no image.
var ErrEmptyImageURL = errors.New("image URL cannot be empty")

// StyleFeedPost is a publicly readable image post authored by a user.
// The feed is always ordered most-recent-first.
type StyleFeedPost struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStyleFeedPost creates a post authored by the given user.
// Returns an error if validation fails.
func NewStyleFeedPost(userID uuid.UUID, imageURL, caption string) (*StyleFeedPost, error) {
	post := &StyleFeedPost{
		ID:        uuid.New(),
		UserID:    userID,
		ImageURL:  imageURL,
		Caption:   caption,
		CreatedAt: time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the StyleFeedPost has valid data.
func (p *StyleFeedPost) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyListingOwner
	}
	if p.ImageURL == "" {
		return ErrEmptyImageURL
	}
	return nil
}
