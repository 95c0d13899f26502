package tags

import (
	"context"
	"fmt"

	"github.com/qup1010/moodlistener/internal/common"
	"github.com/qup1010/moodlistener/internal/dbx"
	"github.com/qup1010/moodlistener/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListAll(ctx context.Context) (*models.TagsByMood, error) {
	list, err := r.query(ctx, `select id, name, mood_type, is_default from tags order by id`)
	if err != nil {
		return nil, err
	}

	out := models.NewTagsByMood()
	for _, t := range list {
		out.Add(t)
	}
	return out, nil
}

func (r *SQLiteRepository) ListByMood(ctx context.Context, mood models.Mood) ([]models.Tag, error) {
	if !mood.Valid() {
		return nil, fmt.Errorf("%w: unknown mood %q", common.ErrorValidation, mood)
	}
	return r.query(ctx, `select id, name, mood_type, is_default from tags where mood_type = ? order by id`, string(mood))
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	row := r.db.QueryRowContext(ctx, `select id, name, mood_type, is_default from tags where id = ?`, id)

	t, err := scanTag(row)
	if dbx.IsNoRows(err) {
		return nil, fmt.Errorf("tag %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, in models.TagInput) (*models.Tag, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t := models.Tag{Name: in.Name, MoodType: in.MoodType}
	id, err := insert(ctx, r.db, t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return &t, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `delete from tags where id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

// SeedDefaults inserts the default catalog through db, normally a
// transaction owned by the caller. It does not check for existing rows.
func SeedDefaults(ctx context.Context, db dbx.DBTX) error {
	for _, t := range models.DefaultTags() {
		if _, err := insert(ctx, db, t); err != nil {
			return err
		}
	}
	return nil
}

func insert(ctx context.Context, db dbx.DBTX, t models.Tag) (int64, error) {
	res, err := db.ExecContext(ctx, `insert into tags (name, mood_type, is_default) values (?, ?, ?)`,
		t.Name, string(t.MoodType), t.IsDefault)
	if err != nil {
		return 0, fmt.Errorf("failed to insert tag: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get tag id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tags: %w", err)
	}
	defer rows.Close()

	result := []models.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return result, nil
}

func scanTag(s interface{ Scan(dest ...any) error }) (*models.Tag, error) {
	var (
		t    models.Tag
		mood string
	)
	if err := s.Scan(&t.ID, &t.Name, &mood, &t.IsDefault); err != nil {
		return nil, err
	}
	t.MoodType = models.Mood(mood)
	return &t, nil
}

var _ Repository = (*SQLiteRepository)(nil)
