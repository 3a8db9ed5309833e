// Package newsletter stores visitor newsletter subscriptions. Subscribing
// is the one write a visitor can perform without a session.
package newsletter

import (
	"context"
	"errors"
	"net/mail"
	"time"
)

var (
	InvalidEmailErr      = errors.New("invalid email address")
	AlreadySubscribedErr = errors.New("already subscribed")
)

type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

type Repo interface {
	Subscribe(ctx context.Context, sub *Subscriber) error
	List(ctx context.Context) ([]*Subscriber, error)
}

// ValidateEmail rejects anything that does not parse as a bare address.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return InvalidEmailErr
	}
	return nil
}
