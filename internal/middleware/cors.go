package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows credentialed requests from the given origins. Session cookies
// are HTTP-only, so a wildcard origin would not work.
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler
}
