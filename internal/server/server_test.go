package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haguru/elibrary/pkg/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_RoutesAndMiddleware(t *testing.T) {
	s := NewServer("127.0.0.1", "0", zerolog.NewNopLogger())

	require.NoError(t, s.AddRoute("GET /api/books/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.PathValue("id")))
	})))

	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	s.Use(tag("outer"), tag("inner"))

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/books/42", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "42", rr.Body.String())
	assert.Equal(t, []string{"outer", "inner"}, order)

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/books/42", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestServer_ConflictingRoute(t *testing.T) {
	s := NewServer("127.0.0.1", "0", zerolog.NewNopLogger())
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	require.NoError(t, s.AddRoute("GET /api/loans/{id}", h))
	assert.Error(t, s.AddRoute("GET /api/loans/{id}", h))
}

func TestServer_ShutdownBeforeServe(t *testing.T) {
	s := NewServer("127.0.0.1", "0", zerolog.NewNopLogger())
	require.NoError(t, s.Shutdown(context.Background()))
	assert.NoError(t, s.ListenAndServe())
}
