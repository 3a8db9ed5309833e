// Package repofake provides an in-memory newsletter.Repo for tests.
package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hotelvalmont/cms-server/newsletter"
)

var _ newsletter.Repo = (*FakeNewsletterRepo)(nil)

type FakeNewsletterRepo struct {
	subscribers map[string]*newsletter.Subscriber // keyed by email
	lock        sync.RWMutex
}

func NewFakeNewsletterRepo() *FakeNewsletterRepo {
	return &FakeNewsletterRepo{subscribers: make(map[string]*newsletter.Subscriber)}
}

func (nr *FakeNewsletterRepo) Subscribe(_ context.Context, sub *newsletter.Subscriber) error {
	nr.lock.Lock()
	defer nr.lock.Unlock()

	if _, ok := nr.subscribers[sub.Email]; ok {
		return newsletter.AlreadySubscribedErr
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	nr.subscribers[sub.Email] = sub
	return nil
}

func (nr *FakeNewsletterRepo) List(_ context.Context) ([]*newsletter.Subscriber, error) {
	nr.lock.RLock()
	defer nr.lock.RUnlock()

	list := make([]*newsletter.Subscriber, 0, len(nr.subscribers))
	for _, s := range nr.subscribers {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return list, nil
}
