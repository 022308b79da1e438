package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"civichub-backend/internal/domain"
	"civichub-backend/internal/metrics"
	"civichub-backend/internal/security"

	"github.com/gorilla/mux"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// AuthMiddleware validates the bearer token and stores its claims in the
// request context.
func AuthMiddleware(tm security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := tm.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondError(w, http.StatusUnauthorized, err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the validated claims stored by AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.Claims)
	return claims, ok
}

func actorFromContext(ctx context.Context) (domain.Actor, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{ProfileID: claims.ProfileID, PlatformAdmin: claims.IsPlatformAdmin()}, true
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware records request counts and latencies per route template.
func MetricsMiddleware(reg *metrics.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tmpl
				}
			}

			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			reg.HTTPRequestsTotal.WithLabelValues(endpoint, r.Method, strconv.Itoa(wrapped.statusCode)).Inc()
			reg.HTTPRequestDuration.WithLabelValues(endpoint, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
