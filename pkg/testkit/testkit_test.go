package testkit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kicksup/kicksup/pkg/storage"
)

// echoHandler answers /health and echoes /echo bodies back, requiring a
// bearer token on /echo.
var echoHandler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/health":
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	case "/echo":
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		b, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
})

func echoEnv() *Env {
	return &Env{
		Handler: echoHandler,
		Tokens:  map[string]string{"client": "tok"},
		Vars:    map[string]string{"greeting": "hello"},
	}
}

func TestRunSingleScenario(t *testing.T) {
	Run(t, echoEnv(), "fixtures/health_check.json")
}

func TestRunSuite(t *testing.T) {
	RunSuite(t, echoEnv(), "fixtures/suite.json")
}

func TestLoadScenarioValidation(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	_, err := LoadScenario(write("noname.json", `{"requestUrl":"/x","expectedCode":200}`))
	assert.ErrorContains(t, err, "name is required")

	_, err = LoadScenario(write("nourl.json", `{"name":"x","expectedCode":200}`))
	assert.ErrorContains(t, err, "requestUrl is required")

	_, err = LoadScenario(write("both.json",
		`{"name":"x","requestUrl":"/x","expectedCode":200,"requestFileName":"a.json","requestBody":{}}`))
	assert.ErrorContains(t, err, "exclusive")

	s, err := LoadScenario(write("ok.json", `{"name":"x","requestUrl":"/x","expectedStatusCode":201,"requestMethod":"post"}`))
	require.NoError(t, err)
	assert.Equal(t, 201, s.ExpectedCode)
	assert.Equal(t, http.MethodPost, s.RequestMethod)
}

func TestEnvExpand(t *testing.T) {
	env := &Env{Vars: map[string]string{"orderId": "abc"}}
	assert.Equal(t, "/api/orders/abc/status", env.Expand("/api/orders/{{orderId}}/status"))
	assert.Equal(t, "/api/products", env.Expand("/api/products"))
}

func TestAssertPath(t *testing.T) {
	body := []byte(`{"data":{"items":[{"q":2}],"name":"Runner","ok":true,"none":null}}`)

	assert.True(t, AssertPath(t, body, "data.name", "Runner"))
	assert.True(t, AssertPath(t, body, "data.name", "*"))
	assert.True(t, AssertPath(t, body, "data.items.#", 1))
	assert.True(t, AssertPath(t, body, "data.items.0.q", 2.0))
	assert.True(t, AssertPath(t, body, "data.ok", true))
	assert.True(t, AssertPath(t, body, "data.none", nil))
	assert.True(t, AssertPath(t, body, "data.missing", nil))
	assert.True(t, AssertPath(t, body, "data.items", []map[string]int{{"q": 2}}))
}

func TestDiffJSON(t *testing.T) {
	diffs := DiffJSON("",
		map[string]any{"a": 1.0, "b": []any{1.0, 2.0}, "c": "x"},
		map[string]any{"a": 2.0, "b": []any{1.0}},
	)
	joined := strings.Join(diffs, "\n")
	assert.Contains(t, joined, "a:")
	assert.Contains(t, joined, "array length expected=2 actual=1")
	assert.Contains(t, joined, "c: missing in actual")
}

func TestMockDisk(t *testing.T) {
	d := NewMockDisk("http://test.local/storage/")
	ctx := context.Background()

	require.NoError(t, d.Put(ctx, "images/a.png", strings.NewReader("png"), "image/png"))
	ok, err := d.Exists(ctx, "images/a.png")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "image/png", d.ContentType("images/a.png"))
	assert.Equal(t, "http://test.local/storage/images/a.png", d.URL("images/a.png"))
	assert.Equal(t, []string{"images/a.png"}, d.Keys())

	require.NoError(t, d.Delete(ctx, "images/a.png"))
	_, err = d.Get(ctx, "images/a.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	d.AssertCalled(t, "Delete", "images/a.png")

	boom := errors.New("bucket gone")
	d.Fail("Put", boom)
	assert.ErrorIs(t, d.Put(ctx, "images/b.png", strings.NewReader("x"), ""), boom)
	assert.Empty(t, d.Keys())

	d.Reset()
	require.NoError(t, d.Put(ctx, "images/b.png", strings.NewReader("x"), ""))
	d.AssertNumberOfCalls(t, "Put", 1)
}
