package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/app"
	"github.com/kicksup/kicksup/pkg/auth"
)

// StorageURL is the base URL of the MockDisk behind NewApp.
const StorageURL = "http://test.local/storage"

// App is the whole API over a private seeded database, with listeners run
// synchronously and uploads kept in memory.
type App struct {
	*app.Application
	DB   *gorm.DB
	Disk *MockDisk
}

// NewApp builds a seeded app for t.
func NewApp(t testing.TB) *App {
	t.Helper()
	db := NewSeededDB(t)
	disk := NewMockDisk(StorageURL)
	a := app.New(db, app.Options{Disk: disk, AuthRateLimit: 1000})
	return &App{Application: a, DB: db, Disk: disk}
}

// User loads a user by username.
func (a *App) User(t testing.TB, username string) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, a.DB.Where("username = ?", username).First(&u).Error)
	return u
}

// Token issues a bearer token for an existing user without going through
// the login endpoint.
func (a *App) Token(t testing.TB, username string) string {
	t.Helper()
	u := a.User(t, username)
	tok, err := auth.GenerateToken(u.ID, u.Username, u.Role.String())
	require.NoError(t, err)
	return tok
}

// TokenFor issues a token for an arbitrary identity, e.g. a user that no
// longer exists.
func TokenFor(t testing.TB, id uuid.UUID, username string, role models.Role) string {
	t.Helper()
	tok, err := auth.GenerateToken(id, username, role.String())
	require.NoError(t, err)
	return tok
}

// Env exposes the app to the scenario runner with "admin" and "client"
// tokens for the seeded accounts.
func (a *App) Env(t testing.TB) *Env {
	t.Helper()
	return &Env{
		Handler: a.Handler(),
		Tokens: map[string]string{
			"admin":  a.Token(t, "admin"),
			"client": a.Token(t, "cliente"),
		},
		Vars: map[string]string{},
	}
}

// Response is a recorded reply.
type Response struct {
	Code   int
	Header http.Header
	Body   []byte
}

// JSON reads a gjson path from the body.
func (r Response) JSON(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

func (r Response) String() string { return string(r.Body) }

// Do sends body (marshalled as JSON unless it is already []byte or nil) with
// an optional bearer token.
func (a *App) Do(t testing.TB, method, url string, body any, token string) Response {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		rd = bytes.NewReader(b)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, rd)
	req.Header.Set("Content-Type", "application/json")
	return a.serve(req, token)
}

// Upload posts content as the multipart field "file".
func (a *App) Upload(t testing.TB, url, filename string, content []byte, token string) Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.serve(req, token)
}

// Login goes through POST /api/auth/login and returns the token.
func (a *App) Login(t testing.TB, username, password string) string {
	t.Helper()
	res := a.Do(t, http.MethodPost, "/api/auth/login",
		map[string]string{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, res.Code, res.String())
	return res.JSON("data.token").String()
}

func (a *App) serve(req *http.Request, token string) Response {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return Response{Code: rec.Code, Header: rec.Header(), Body: rec.Body.Bytes()}
}
