package entries

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/qup1010/moodlistener/internal/common"
	"github.com/qup1010/moodlistener/internal/dbx"
	"github.com/qup1010/moodlistener/internal/models"
	"github.com/qup1010/moodlistener/internal/timex"
)

const entryColumns = `id, date, time, mood, title, content, tags, location, images, created_at, updated_at`

// SQLiteRepository implements Repository over the entries table.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository returns a new SQLiteRepository bound to db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// WithClock replaces the time source used for timestamps.
func (r *SQLiteRepository) WithClock(now func() time.Time) *SQLiteRepository {
	r.now = now
	return r
}

// List returns entries matching f, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, f models.EntryFilter) ([]models.Entry, error) {
	var (
		where []string
		args  []any
	)
	if f.Mood != nil {
		where = append(where, "mood = ?")
		args = append(args, string(*f.Mood))
	}
	if f.StartDate != "" {
		where = append(where, "date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		where = append(where, "date <= ?")
		args = append(args, f.EndDate)
	}

	query := `SELECT ` + entryColumns + ` FROM entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date DESC, time DESC, id DESC`

	if f.Limit > 0 || f.Offset > 0 {
		limit := -1
		if f.Limit > 0 {
			limit = f.Limit
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, max(f.Offset, 0))
	}

	return queryEntries(ctx, r.db, query, args...)
}

// GetByID returns the entry with the given id.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	return getByID(ctx, r.db, id)
}

// GetByDate returns the entries dated date, latest time first.
func (r *SQLiteRepository) GetByDate(ctx context.Context, date string) ([]models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE date = ? ORDER BY time DESC, id DESC`
	return queryEntries(ctx, r.db, query, date)
}

// Search matches query against title, content and location with LIKE.
// Wildcards in query are escaped so they match literally.
func (r *SQLiteRepository) Search(ctx context.Context, query string) ([]models.Entry, error) {
	pattern := "%" + escapeLike(query) + "%"
	q := `SELECT ` + entryColumns + ` FROM entries
		WHERE title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\' OR location LIKE ? ESCAPE '\'
		ORDER BY date DESC, time DESC, id DESC`
	return queryEntries(ctx, r.db, q, pattern, pattern, pattern)
}

// Create inserts a new entry and returns it with its assigned id.
func (r *SQLiteRepository) Create(ctx context.Context, in models.EntryInput) (*models.Entry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	e := in.NewEntry(0, r.now())
	query := `INSERT INTO entries (date, time, mood, title, content, tags, location, images, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		e.Date, e.Time, string(e.Mood), e.Title, e.Content, e.Tags, e.Location, e.Images,
		timex.FormatStamp(e.CreatedAt), timex.FormatStamp(e.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry id: %w", err)
	}
	e.ID = id
	return &e, nil
}

// Update applies p to the stored entry inside a transaction.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, p models.EntryPatch) (*models.Entry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return dbx.WithTxValue(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) (*models.Entry, error) {
		e, err := getByID(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		p.Apply(e)
		e.UpdatedAt = timex.NextStamp(r.now(), e.UpdatedAt)

		query := `UPDATE entries SET date = ?, time = ?, mood = ?, title = ?, content = ?,
			tags = ?, location = ?, images = ?, updated_at = ? WHERE id = ?`
		_, err = tx.ExecContext(ctx, query,
			e.Date, e.Time, string(e.Mood), e.Title, e.Content, e.Tags, e.Location, e.Images,
			timex.FormatStamp(e.UpdatedAt), id)
		if err != nil {
			return nil, fmt.Errorf("failed to update entry: %w", err)
		}
		return e, nil
	})
}

// DeleteByID removes the entry; a missing id is silently ignored.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// Count returns the number of rows in the entries table.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

func getByID(ctx context.Context, db dbx.DBTX, id int64) (*models.Entry, error) {
	row := db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if dbx.IsNoRows(err) {
		return nil, fmt.Errorf("entry %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return e, nil
}

func queryEntries(ctx context.Context, db dbx.DBTX, query string, args ...any) ([]models.Entry, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := []models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.Entry, error) {
	var (
		e                models.Entry
		mood             string
		created, updated string
	)
	err := s.Scan(&e.ID, &e.Date, &e.Time, &mood, &e.Title, &e.Content,
		&e.Tags, &e.Location, &e.Images, &created, &updated)
	if err != nil {
		return nil, err
	}
	e.Mood = models.Mood(mood)

	if e.CreatedAt, err = timex.ParseStamp(created); err != nil {
		return nil, fmt.Errorf("entry %d: bad created_at: %w", e.ID, err)
	}
	if e.UpdatedAt, err = timex.ParseStamp(updated); err != nil {
		return nil, fmt.Errorf("entry %d: bad updated_at: %w", e.ID, err)
	}
	return &e, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
