package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Session routes - reachable without a session by design
	RouteAPILogin  = "/api/admin/login"
	RouteAPILogout = "/api/admin/logout"

	// Public mutation routes
	RouteAPINewsletter = "/api/newsletter"
	RouteAPIRevalidate = "/api/revalidate"

	// Administrator-only resources - privileged even for reads
	RouteAPIAdminUsers  = "/api/admin/users"
	RouteAPIAdminUpload = "/api/admin/upload"

	// Administrator self-service
	RouteAPIPassword = "/api/admin/password"

	// Admin area pages
	RouteAdminArea = "/admin"

	// Static uploads
	RouteUploads = "/uploads/"

	apiPrefix       = "/api/"
	adminAreaPrefix = RouteAdminArea + "/"
)
