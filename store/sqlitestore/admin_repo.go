package sqlitestore

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/admins"
)

var AdminNotFoundErr = errors.New("administrator not found")

var _ admins.Repo = (*adminRepo)(nil)

type adminRepo struct {
	db *sql.DB
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*admins.Admin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, display_name, created_at FROM admins WHERE email = ?`, email)
	return scanAdmin(row)
}

func (r *adminRepo) GetByID(ctx context.Context, id string) (*admins.Admin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, display_name, created_at FROM admins WHERE id = ?`, id)
	return scanAdmin(row)
}

func (r *adminRepo) List(ctx context.Context) ([]*admins.Admin, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, password_hash, display_name, created_at FROM admins ORDER BY email`)
	if err != nil {
		return nil, errors.Wrap(err, "[adminRepo.List] query")
	}
	defer rows.Close()

	var list []*admins.Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, admin)
	}
	return list, errors.Wrap(rows.Err(), "[adminRepo.List] rows")
}

func (r *adminRepo) Create(ctx context.Context, admin *admins.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (id, email, password_hash, display_name, created_at) VALUES (?, ?, ?, ?, ?)`,
		admin.ID, admin.Email, admin.PasswordHash, admin.DisplayName, formatTime(admin.CreatedAt))
	return errors.Wrap(err, "[adminRepo.Create] insert")
}

func (r *adminRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admins SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return errors.Wrap(err, "[adminRepo.UpdatePasswordHash] update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return AdminNotFoundErr
	}
	return nil
}

func (r *adminRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "[adminRepo.Delete] delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return AdminNotFoundErr
	}
	return nil
}

func (r *adminRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "[adminRepo.Count] scan")
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row rowScanner) (*admins.Admin, error) {
	var (
		admin     admins.Admin
		createdAt string
	)
	if err := row.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.DisplayName, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, AdminNotFoundErr
		}
		return nil, errors.Wrap(err, "[scanAdmin] scan")
	}
	admin.CreatedAt = parseTime(createdAt)
	return &admin, nil
}
