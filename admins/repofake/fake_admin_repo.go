// Package repofake provides an in-memory admins.Repo for tests.
package repofake

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hotelvalmont/cms-server/admins"
)

var ErrNotFound = errors.New("not found")

var _ admins.Repo = (*FakeAdminRepo)(nil)

type FakeAdminRepo struct {
	admins   map[string]*admins.Admin
	emailIds map[string]string // email to admin id
	lock     sync.RWMutex
}

func NewFakeAdminRepo() *FakeAdminRepo {
	return &FakeAdminRepo{
		admins:   make(map[string]*admins.Admin),
		emailIds: make(map[string]string),
	}
}

func (ar *FakeAdminRepo) Create(_ context.Context, admin *admins.Admin) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	ar.admins[admin.ID] = admin
	ar.emailIds[admin.Email] = admin.ID
	return nil
}

func (ar *FakeAdminRepo) GetByEmail(_ context.Context, email string) (*admins.Admin, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	id, ok := ar.emailIds[email]
	if !ok {
		return nil, ErrNotFound
	}
	return ar.admins[id], nil
}

func (ar *FakeAdminRepo) GetByID(_ context.Context, id string) (*admins.Admin, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	admin, ok := ar.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	return admin, nil
}

func (ar *FakeAdminRepo) List(_ context.Context) ([]*admins.Admin, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	list := make([]*admins.Admin, 0, len(ar.admins))
	for _, a := range ar.admins {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return list, nil
}

func (ar *FakeAdminRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	admin, ok := ar.admins[id]
	if !ok {
		return ErrNotFound
	}
	admin.PasswordHash = hash
	return nil
}

func (ar *FakeAdminRepo) Delete(_ context.Context, id string) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	admin, ok := ar.admins[id]
	if !ok {
		return ErrNotFound
	}
	delete(ar.emailIds, admin.Email)
	delete(ar.admins, id)
	return nil
}

func (ar *FakeAdminRepo) Count(_ context.Context) (int, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	return len(ar.admins), nil
}
