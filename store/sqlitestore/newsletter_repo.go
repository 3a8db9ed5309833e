package sqlitestore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/newsletter"
)

var _ newsletter.Repo = (*newsletterRepo)(nil)

type newsletterRepo struct {
	db *sql.DB
}

func (r *newsletterRepo) Subscribe(ctx context.Context, sub *newsletter.Subscriber) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscribers (id, email, subscribed_at) VALUES (?, ?, ?)`,
		sub.ID, sub.Email, formatTime(sub.SubscribedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return newsletter.AlreadySubscribedErr
		}
		return errors.Wrap(err, "[newsletterRepo.Subscribe] insert")
	}
	return nil
}

func (r *newsletterRepo) List(ctx context.Context) ([]*newsletter.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, subscribed_at FROM newsletter_subscribers ORDER BY email`)
	if err != nil {
		return nil, errors.Wrap(err, "[newsletterRepo.List] query")
	}
	defer rows.Close()

	var list []*newsletter.Subscriber
	for rows.Next() {
		var (
			sub          newsletter.Subscriber
			subscribedAt string
		)
		if err := rows.Scan(&sub.ID, &sub.Email, &subscribedAt); err != nil {
			return nil, errors.Wrap(err, "[newsletterRepo.List] scan")
		}
		sub.SubscribedAt = parseTime(subscribedAt)
		list = append(list, &sub)
	}
	return list, errors.Wrap(rows.Err(), "[newsletterRepo.List] rows")
}
