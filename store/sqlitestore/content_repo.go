package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/content"
)

var _ content.Repo = (*contentRepo)(nil)

type contentRepo struct {
	db *sql.DB
}

const entityColumns = `type, id, slug, fields, position, created_at, updated_at`

func (r *contentRepo) Get(ctx context.Context, t content.Type, id string) (*content.Entity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entityColumns+` FROM content_entities WHERE type = ? AND id = ?`, t, id)
	return scanEntity(row)
}

func (r *contentRepo) List(ctx context.Context, t content.Type, orderBy string) ([]*content.Entity, error) {
	order := `created_at, id`
	if orderBy == "position" {
		order = `position, created_at`
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entityColumns+` FROM content_entities WHERE type = ? ORDER BY `+order, t)
	if err != nil {
		return nil, errors.Wrap(err, "[contentRepo.List] query")
	}
	defer rows.Close()

	var list []*content.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, errors.Wrap(rows.Err(), "[contentRepo.List] rows")
}

func (r *contentRepo) Create(ctx context.Context, e *content.Entity) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	fields, err := json.Marshal(e.Fields)
	if err != nil {
		return errors.Wrap(err, "[contentRepo.Create] marshal fields")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO content_entities (`+entityColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Type, e.ID, e.Slug, string(fields), e.Position, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	return errors.Wrap(err, "[contentRepo.Create] insert")
}

func (r *contentRepo) Update(ctx context.Context, e *content.Entity) error {
	fields, err := json.Marshal(e.Fields)
	if err != nil {
		return errors.Wrap(err, "[contentRepo.Update] marshal fields")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE content_entities SET slug = ?, fields = ?, position = ?, updated_at = ? WHERE type = ? AND id = ?`,
		e.Slug, string(fields), e.Position, formatTime(e.UpdatedAt), e.Type, e.ID)
	if err != nil {
		return errors.Wrap(err, "[contentRepo.Update] update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return content.NotFoundErr
	}
	return nil
}

func (r *contentRepo) Delete(ctx context.Context, t content.Type, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM content_entities WHERE type = ? AND id = ?`, t, id)
	if err != nil {
		return errors.Wrap(err, "[contentRepo.Delete] delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return content.NotFoundErr
	}
	return nil
}

func (r *contentRepo) GetBySlug(ctx context.Context, t content.Type, slug string) (*content.Entity, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entityColumns+` FROM content_entities WHERE type = ? AND slug = ?`, t, slug)
	return scanEntity(row)
}

func (r *contentRepo) UpsertBySlug(ctx context.Context, e *content.Entity) error {
	existing, err := r.GetBySlug(ctx, e.Type, e.Slug)
	switch {
	case err == nil:
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
		return r.Update(ctx, e)
	case errors.Is(err, content.NotFoundErr):
		return r.Create(ctx, e)
	default:
		return errors.Wrap(err, "[contentRepo.UpsertBySlug] lookup")
	}
}

func scanEntity(row rowScanner) (*content.Entity, error) {
	var (
		e         content.Entity
		fields    string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&e.Type, &e.ID, &e.Slug, &fields, &e.Position, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, content.NotFoundErr
		}
		return nil, errors.Wrap(err, "[scanEntity] scan")
	}

	if err := json.Unmarshal([]byte(fields), &e.Fields); err != nil {
		return nil, errors.Wrap(err, "[scanEntity] unmarshal fields")
	}
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
