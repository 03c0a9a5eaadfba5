package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/haguru/elibrary/config"
)

// CORS answers preflight requests and adds the CORS headers to every response.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{HeaderXRequestID, "Retry-After"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           7200,
	})
	return c.Handler
}
