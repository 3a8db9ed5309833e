package server

import (
	"net/http"
	"strings"

	"github.com/hotelvalmont/cms-server/internal/locales"
)

// RouteClass is the closed set of protection policies a request can fall
// under. Every inbound request maps to exactly one class; a new route that
// matches no explicit rule lands in RoutePassThrough rather than silently
// outside all of them.
type RouteClass int

const (
	// RoutePublic routes stay reachable without a session.
	RoutePublic RouteClass = iota
	// RouteMutationGuarded covers mutating verbs under the API namespace.
	RouteMutationGuarded
	// RouteAlwaysGuarded covers administrator-only resources, reads included.
	RouteAlwaysGuarded
	// RouteAdminPageGuarded covers admin-area sub-pages browsed by a human.
	RouteAdminPageGuarded
	// RoutePassThrough is everything else: public pages and assets.
	RoutePassThrough
)

func (rc RouteClass) String() string {
	switch rc {
	case RoutePublic:
		return "public"
	case RouteMutationGuarded:
		return "mutation-guarded"
	case RouteAlwaysGuarded:
		return "always-guarded"
	case RouteAdminPageGuarded:
		return "admin-page-guarded"
	default:
		return "pass-through"
	}
}

// Classify maps a request's path and method to its protection policy.
// Rules are checked in a fixed precedence order; the function is pure and
// carries no transport state.
func Classify(path, method string) RouteClass {
	// 1. Login and logout stay reachable without a session; logout must
	// succeed even when no valid session exists.
	if path == RouteAPILogin || path == RouteAPILogout {
		return RoutePublic
	}

	// 2. Visitors may subscribe to the newsletter without authenticating,
	// and the revalidation endpoint is gated by its own shared secret
	// rather than a session. Only the create method is special-cased.
	if (path == RouteAPINewsletter || path == RouteAPIRevalidate) && method == http.MethodPost {
		return RoutePublic
	}

	// 3. Mutating verbs under the API namespace require a session.
	if strings.HasPrefix(path, apiPrefix) && isMutatingMethod(method) {
		return RouteMutationGuarded
	}

	// 4. Administrator-only resources are privileged regardless of method.
	if isAdminResource(path) {
		return RouteAlwaysGuarded
	}

	// 5. Sub-pages of the admin area, with or without a locale prefix.
	// The login page itself (/admin, /en/admin) is not guarded. A first
	// segment that is not a supported locale is not stripped.
	if _, rest := locales.Split(path); isAdminSubPage(rest) {
		return RouteAdminPageGuarded
	}

	return RoutePassThrough
}

func isMutatingMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}

func isAdminResource(path string) bool {
	return path == RouteAPIAdminUsers ||
		strings.HasPrefix(path, RouteAPIAdminUsers+"/") ||
		path == RouteAPIAdminUpload
}

func isAdminSubPage(path string) bool {
	if !strings.HasPrefix(path, adminAreaPrefix) {
		return false
	}
	return strings.Trim(strings.TrimPrefix(path, adminAreaPrefix), "/") != ""
}
