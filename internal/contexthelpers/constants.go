package contexthelpers

// contextKey is unexported so request values set here cannot collide with
// keys from other packages.
type contextKey string

const (
	isAuthenticatedContextKey     = contextKey("isAuthenticated")
	authenticatedUserIDContextKey = contextKey("authenticatedUserID")
	currentPathContextKey         = contextKey("currentPath")
	csrfTokenContextKey           = contextKey("csrfToken")
	cspNonceContextKey            = contextKey("cspNonce")
)
