package content

import "context"

// Repo is the persistence boundary for content entities: a keyed record
// store addressed by entity type and id, plus slug addressing for the
// singleton-per-page heroes.
type Repo interface {
	Get(ctx context.Context, t Type, id string) (*Entity, error)
	// List returns all entities of a type, ordered by orderBy ("position"
	// or "" for creation order).
	List(ctx context.Context, t Type, orderBy string) ([]*Entity, error)
	Create(ctx context.Context, e *Entity) error
	Update(ctx context.Context, e *Entity) error
	Delete(ctx context.Context, t Type, id string) error
	GetBySlug(ctx context.Context, t Type, slug string) (*Entity, error)
	// UpsertBySlug creates the entity if no record with its slug exists,
	// otherwise replaces that record's fields.
	UpsertBySlug(ctx context.Context, e *Entity) error
}
