package interfaces

import (
	"context"
	"net/http"
)

// Server interface defines the methods for a server implementation.
type Server interface {
	// AddRoute registers handler for a ServeMux pattern such as "GET /api/books/{id}".
	AddRoute(pattern string, handler http.Handler) error
	// Use appends middleware wrapped around every route, outermost first.
	Use(middleware ...func(http.Handler) http.Handler)
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}
