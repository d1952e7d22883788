package ctx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	appctx "github.com/kicksup/kicksup/pkg/ctx"
	"github.com/kicksup/kicksup/pkg/realip"
)

func serve(h appctx.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	appctx.Wrap(h)(rec, req)
	return rec
}

func TestSuccessEnvelope(t *testing.T) {
	rec := serve(func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
	}, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, int64(200), gjson.Get(body, "status").Int())
	assert.Equal(t, int64(1), gjson.Get(body, "data.id").Int())
	assert.False(t, gjson.Get(body, "message").Exists())
}

func TestCreatedSetsLocation(t *testing.T) {
	rec := serve(func(c *appctx.Context) {
		c.Created(map[string]any{"id": "x"}, "/api/things/x")
	}, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/things/x", rec.Header().Get("Location"))
}

func TestNoContent(t *testing.T) {
	rec := serve(func(c *appctx.Context) { c.NoContent() }, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBindJSONValid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"John"}`))
	var got string
	rec := serve(func(c *appctx.Context) {
		var in struct {
			Name string `json:"name" validate:"required"`
		}
		if !c.BindJSON(&in) {
			return
		}
		got = in.Name
		c.Success(nil)
	}, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "John", got)
}

func TestBindJSONValidationFailure(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
	rec := serve(func(c *appctx.Context) {
		var in struct {
			Name string `json:"name" validate:"required"`
		}
		assert.False(t, c.BindJSON(&in))
	}, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "The name field is required.", gjson.Get(rec.Body.String(), "errors.name").String())
}

func TestBindJSONMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	rec := serve(func(c *appctx.Context) {
		var in struct{ Name string }
		assert.False(t, c.BindJSON(&in))
	}, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, gjson.Get(rec.Body.String(), "message").String(), "invalid JSON")
}

func TestParamUUID(t *testing.T) {
	id := uuid.New()
	r := chi.NewRouter()
	var got uuid.UUID
	r.Get("/things/{id}", appctx.Wrap(func(c *appctx.Context) {
		v, ok := c.ParamUUID("id")
		if !ok {
			return
		}
		got = v
		c.Success(nil)
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, got)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/not-a-uuid", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFailWithDetails(t *testing.T) {
	rec := serve(func(c *appctx.Context) {
		c.Fail(http.StatusBadRequest, "nope", []string{"a", "b"})
	}, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "nope", gjson.Get(rec.Body.String(), "message").String())
	assert.Equal(t, int64(2), gjson.Get(rec.Body.String(), "errors.#").Int())
}

func TestInternalErrorHidesDetails(t *testing.T) {
	rec := serve(func(c *appctx.Context) {
		c.InternalError(errors.New("db exploded"))
	}, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db exploded")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	var ip string
	serve(func(c *appctx.Context) { ip = c.ClientIP() }, req)
	assert.Equal(t, "10.0.0.1", ip)

	require.NoError(t, realip.SetTrustedProxies([]string{"10.0.0.0/8"}))
	t.Cleanup(func() { _ = realip.SetTrustedProxies(nil) })
	serve(func(c *appctx.Context) { ip = c.ClientIP() }, req)
	assert.Equal(t, "1.2.3.4", ip)
}
