package admins

import "context"

// Repo is the persistence boundary for administrator credential records.
type Repo interface {
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	List(ctx context.Context) ([]*Admin, error)
	Create(ctx context.Context, admin *Admin) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
