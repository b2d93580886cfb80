// Package http pkg/http/middleware.go
package http

import (
	"net/http"
	"strings"

	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

// CommonMiddleware logs each request and applies CORS headers. An empty
// allowed-origin list falls back to "*" so local development works out
// of the box.
func CommonMiddleware(next http.Handler, cors models.CORSConfig, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("remote_addr", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("HTTP request")

		if origin, ok := resolveOrigin(r.Header.Get("Origin"), cors.AllowedOrigins); ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if cors.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// resolveOrigin picks the CORS origin header value for a request origin,
// or reports that none should be set.
func resolveOrigin(origin string, allowed []string) (string, bool) {
	if len(allowed) == 0 {
		return "*", true
	}

	if origin == "" {
		return "", false
	}

	for _, candidate := range allowed {
		if candidate == "*" {
			return "*", true
		}

		if strings.EqualFold(candidate, origin) {
			return origin, true
		}
	}

	return "", false
}

// APIKeyOptions configures API key authentication.
type APIKeyOptions struct {
	// APIKey is the expected key. Empty disables authentication.
	APIKey string
	// ExcludePaths are path prefixes served without a key, such as
	// health probes.
	ExcludePaths []string
	// LogUnauthorized logs rejected requests when set.
	LogUnauthorized bool
	Logger          logger.Logger
}

// APIKeyMiddleware guards routes with a static API key carried in the
// X-API-Key header or the api_key query parameter.
func APIKeyMiddleware(apiKey string) func(next http.Handler) http.Handler {
	return APIKeyMiddlewareWithOptions(APIKeyOptions{APIKey: apiKey})
}

// APIKeyMiddlewareWithOptions is APIKeyMiddleware with path exclusions
// and rejection logging.
func APIKeyMiddlewareWithOptions(opts APIKeyOptions) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.APIKey == "" || excludedPath(r.URL.Path, opts.ExcludePaths) {
				next.ServeHTTP(w, r)
				return
			}

			requestKey := r.Header.Get("X-API-Key")
			if requestKey == "" {
				requestKey = r.URL.Query().Get("api_key")
			}

			if requestKey != opts.APIKey {
				if opts.LogUnauthorized && opts.Logger != nil {
					opts.Logger.Warn().
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("Unauthorized API access attempt")
				}

				http.Error(w, "Unauthorized", http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func excludedPath(path string, excluded []string) bool {
	for _, prefix := range excluded {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
