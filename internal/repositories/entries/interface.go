package entries

import (
	"context"

	"github.com/qup1010/moodlistener/internal/models"
)

// Repository describes CRUD and query operations for journal entries.
// Every mutating call is persisted before it returns.
type Repository interface {
	// List returns entries matching f, most recent first. Offset is applied
	// before Limit. An empty filter returns the whole collection.
	List(ctx context.Context, f models.EntryFilter) ([]models.Entry, error)

	// GetByID returns one entry or an error wrapping common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Entry, error)

	// GetByDate returns the entries of one calendar day, latest time first.
	GetByDate(ctx context.Context, date string) ([]models.Entry, error)

	// Search returns entries whose title, content or location contains
	// query, ignoring case, in List order.
	Search(ctx context.Context, query string) ([]models.Entry, error)

	// Create validates in, assigns an id and timestamps, and returns the
	// stored entry.
	Create(ctx context.Context, in models.EntryInput) (*models.Entry, error)

	// Update applies the fields present in p, refreshes UpdatedAt and
	// returns the stored entry. Missing ids yield common.ErrorNotFound.
	Update(ctx context.Context, id int64, p models.EntryPatch) (*models.Entry, error)

	// DeleteByID removes an entry. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id int64) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)
}
