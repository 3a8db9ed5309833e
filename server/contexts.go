package server

import (
	"context"

	"github.com/hotelvalmont/cms-server/admins"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyAdmin stores the authenticated administrator's identity
const ContextKeyAdmin ContextKey = "admin"

func contextWithAdmin(ctx context.Context, info admins.Info) context.Context {
	return context.WithValue(ctx, ContextKeyAdmin, info)
}

// AdminFromContext returns the authenticated administrator injected by the
// gatekeeper, if any.
func AdminFromContext(ctx context.Context) (admins.Info, bool) {
	info, ok := ctx.Value(ContextKeyAdmin).(admins.Info)
	return info, ok
}
