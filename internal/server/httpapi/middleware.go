package httpapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"linkboard/internal/server/auth"
)

// requestID tags every request with a fresh id, echoed back in the response
// header and attached to log lines.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		ctx := contextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identity resolves the bearer token into a user id on the request context.
// A missing, malformed, or foreign-signed token degrades to anonymous;
// operations that need an identity fail later with Unauthenticated.
func (s *Server) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := auth.UserIDFromToken(token, s.jwtSecret)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// logRequests writes one line per request with the request id and identity.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		args := []any{"method", r.Method, "path", r.URL.Path, "request_id", RequestID(ctx)}
		if userID, ok := UserID(ctx); ok {
			args = append(args, "user_id", userID)
		}
		s.logger.Info(ctx, "request", args...)

		next.ServeHTTP(w, r)
	})
}
