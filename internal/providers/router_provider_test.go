package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/wines", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/wines", routes[0].Url)
	assert.Equal(t, "GET /wines", routes[0].Pattern())
}

func TestRouterProvider_MethodsAddRoutes(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", dummyHandler())
	rp.Post("/b", dummyHandler())
	rp.Put("/c/{key}", dummyHandler())
	rp.Delete("/c/{key}", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 4)
	assert.Equal(t, http.MethodPost, routes[1].Method)
	assert.Equal(t, "PUT /c/{key}", routes[2].Pattern())
	assert.Equal(t, "DELETE /c/{key}", routes[3].Pattern())
}

func serveRoutes(rp RouterProviderInterface) *http.ServeMux {
	mux := http.NewServeMux()
	for _, r := range rp.GetRoutes() {
		mux.Handle(r.Pattern(), r.Handler)
	}
	return mux
}

func TestRouterProvider_CorrectMethod(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", dummyHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	serveRoutes(rp).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestRouterProvider_GetRouteRejectsPost(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", dummyHandler())

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rr := httptest.NewRecorder()
	serveRoutes(rp).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterProvider_SamePathDifferentMethods(t *testing.T) {
	rp := NewRouterProvider()
	rp.Put("/logs/{key}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("put " + r.PathValue("key")))
	}))
	rp.Delete("/logs/{key}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	mux := serveRoutes(rp)

	req := httptest.NewRequest(http.MethodPut, "/logs/abc", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, "put abc", rr.Body.String())

	req = httptest.NewRequest(http.MethodDelete, "/logs/abc", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
