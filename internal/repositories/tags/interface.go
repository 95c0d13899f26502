package tags

import (
	"context"

	"github.com/qup1010/moodlistener/internal/models"
)

// Repository describes the mood-scoped tag catalog.
type Repository interface {
	// ListAll returns every tag partitioned by mood, in creation order
	// within each category.
	ListAll(ctx context.Context) (*models.TagsByMood, error)

	// ListByMood returns the tags of one mood in creation order.
	ListByMood(ctx context.Context, mood models.Mood) ([]models.Tag, error)

	// GetByID returns one tag or an error wrapping common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Tag, error)

	// Create validates in and stores a user tag. Duplicate names are kept.
	Create(ctx context.Context, in models.TagInput) (*models.Tag, error)

	// DeleteByID removes a tag. Entries that carry its name are left
	// untouched and a missing id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}
