package middleware

// ContextKey is a private key type for request-context values, so values set
// here cannot collide with other packages.
type ContextKey string

// RequesterEmailCtxKey holds the authenticated requester's email, attached by
// JWTAuth. Handlers behind the auth group can rely on it being present.
const RequesterEmailCtxKey = ContextKey("requester_email")
