package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/slangscope/slangscope/config"
)

const versionHeader = "X-SlangScope-Version"

// SendVersion is a middleware that adds the current version to the response
func SendVersion(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get(versionHeader) == "" {
			w.Header().Add(
				versionHeader,
				config.VersionString,
			)
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

// ApplyCustomHeaders is a middleware that adds custom headers to the response
func ApplyCustomHeaders(customHeaders map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for key, value := range customHeaders {
				actualValue := value
				// Detect and handle sensitive header values originating from environment variables
				if strings.HasPrefix(value, "env:") {
					actualValue = os.Getenv(value[4:])
				}

				// Only add the header if it's not already set, allowing for route-specific overrides
				if w.Header().Get(key) == "" {
					w.Header().Add(key, actualValue)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LimitRequestSize caps request bodies at maxBytes. 0 disables the limit.
func LimitRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
