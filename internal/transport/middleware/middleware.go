// Package middleware holds the HTTP middleware mounted on the root router.
package middleware

import "net/http"

// Middleware wraps an http.Handler. The router mounts each one with chi's
// Use, so route patterns are resolved by the time they inspect the response.
type Middleware func(http.Handler) http.Handler
