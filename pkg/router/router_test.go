package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestGroupPrefixesAndNames(t *testing.T) {
	r := New()
	api := r.Group("/api")
	api.Group("products").Get("/{id}", "products.show", ok)
	api.Delete("/orders/{id}", "orders.destroy", ok)

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/api/products/{id}", path)

	url, err := r.URL("orders.destroy", map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/api/orders/abc", url)

	_, err = r.URL("orders.destroy", nil)
	assert.Error(t, err)

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestGroupMiddlewareOrder(t *testing.T) {
	var trace []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				trace = append(trace, name)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := New()
	g := r.Group("/api", tag("outer")).Group("/users", tag("inner"))
	g.Patch("/{id}", "users.patch", ok, tag("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/users/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner", "route"}, trace)
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	g := r.Group("/api")
	g.Put("/b", "b.put", ok)
	g.Get("/b", "b.get", ok)
	g.Post("/a", "a.post", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, RouteInfo{Method: http.MethodPost, Path: "/api/a", Name: "a.post"}, routes[0])
	assert.Equal(t, http.MethodGet, routes[1].Method)
	assert.Equal(t, http.MethodPut, routes[2].Method)
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/", joinPath())
	assert.Equal(t, "/", joinPath("/", ""))
	assert.Equal(t, "/api/users", joinPath("/api/", "/users/"))
}
