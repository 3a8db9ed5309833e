// Package repofake provides an in-memory content.Repo for tests.
package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hotelvalmont/cms-server/content"
)

var _ content.Repo = (*FakeContentRepo)(nil)

type key struct {
	t  content.Type
	id string
}

type FakeContentRepo struct {
	entities map[key]*content.Entity
	lock     sync.RWMutex

	// FailWith, when set, makes every call return this error. Used to
	// exercise storage-failure paths.
	FailWith error
}

func NewFakeContentRepo() *FakeContentRepo {
	return &FakeContentRepo{entities: make(map[key]*content.Entity)}
}

func (cr *FakeContentRepo) Get(_ context.Context, t content.Type, id string) (*content.Entity, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	if cr.FailWith != nil {
		return nil, cr.FailWith
	}

	e, ok := cr.entities[key{t, id}]
	if !ok {
		return nil, content.NotFoundErr
	}
	return cloneEntity(e), nil
}

func (cr *FakeContentRepo) List(_ context.Context, t content.Type, orderBy string) ([]*content.Entity, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	if cr.FailWith != nil {
		return nil, cr.FailWith
	}

	var list []*content.Entity
	for k, e := range cr.entities {
		if k.t == t {
			list = append(list, cloneEntity(e))
		}
	}

	switch orderBy {
	case "position":
		sort.Slice(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	default:
		sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	}
	return list, nil
}

func (cr *FakeContentRepo) Create(_ context.Context, e *content.Entity) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.FailWith != nil {
		return cr.FailWith
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	cr.entities[key{e.Type, e.ID}] = cloneEntity(e)
	return nil
}

func (cr *FakeContentRepo) Update(_ context.Context, e *content.Entity) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.FailWith != nil {
		return cr.FailWith
	}

	if _, ok := cr.entities[key{e.Type, e.ID}]; !ok {
		return content.NotFoundErr
	}
	cr.entities[key{e.Type, e.ID}] = cloneEntity(e)
	return nil
}

func (cr *FakeContentRepo) Delete(_ context.Context, t content.Type, id string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.FailWith != nil {
		return cr.FailWith
	}

	if _, ok := cr.entities[key{t, id}]; !ok {
		return content.NotFoundErr
	}
	delete(cr.entities, key{t, id})
	return nil
}

func (cr *FakeContentRepo) GetBySlug(_ context.Context, t content.Type, slug string) (*content.Entity, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	if cr.FailWith != nil {
		return nil, cr.FailWith
	}

	for k, e := range cr.entities {
		if k.t == t && e.Slug == slug {
			return cloneEntity(e), nil
		}
	}
	return nil, content.NotFoundErr
}

func (cr *FakeContentRepo) UpsertBySlug(_ context.Context, e *content.Entity) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.FailWith != nil {
		return cr.FailWith
	}

	for k, existing := range cr.entities {
		if k.t == e.Type && existing.Slug == e.Slug {
			e.ID = existing.ID
			e.CreatedAt = existing.CreatedAt
			cr.entities[k] = cloneEntity(e)
			return nil
		}
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	cr.entities[key{e.Type, e.ID}] = cloneEntity(e)
	return nil
}

func cloneEntity(e *content.Entity) *content.Entity {
	out := *e
	out.Fields = make(content.Fields, len(e.Fields))
	for k, v := range e.Fields {
		out.Fields[k] = v
	}
	return &out
}
