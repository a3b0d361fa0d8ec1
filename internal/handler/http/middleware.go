package http

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/admin"
)

// AdminAuth guards the /admin routes with a Bearer session token issued by
// the admin service.
func AdminAuth(svc admin.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				respondWithError(w, http.StatusUnauthorized, "Missing bearer token")
				return
			}

			adminID, err := svc.VerifyToken(token)
			if err != nil {
				log.Warn().Err(err).Msg("Rejected admin request with invalid token")
				respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			r.Header.Set("X-Admin-ID", adminID.String())
			next.ServeHTTP(w, r)
		})
	}
}
