// Package httpapi implements the REST adapter over the primary service
// ports: routing, the mocked-auth user middleware, request decoding, and the
// error-to-status mapping.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/example/cobra/internal/ctxutil"
)

// Mocked auth headers. There is no credential check in this build; the
// headers are trusted as-is and absent headers yield the anonymous identity.
const (
	headerUserEmail     = "X-User-Email"
	headerUserName      = "X-User-Name"
	headerUserPositions = "X-User-Positions"
	headerUserAdmin     = "X-User-Admin"
)

// UserContext reads the identity headers into the request context.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(headerUserEmail))
		if email == "" {
			next.ServeHTTP(w, r)
			return
		}

		user := ctxutil.User{
			Email:   email,
			Name:    strings.TrimSpace(r.Header.Get(headerUserName)),
			IsAdmin: strings.EqualFold(r.Header.Get(headerUserAdmin), "true"),
		}
		if user.Name == "" {
			user.Name = email
		}
		for _, p := range strings.Split(r.Header.Get(headerUserPositions), ",") {
			if p = strings.TrimSpace(p); p != "" {
				user.Positions = append(user.Positions, p)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctxutil.WithUser(r.Context(), user)))
	})
}
