// Package ctx provides the request context KicksUp handlers are written
// against. A handler receives one *Context instead of (w, r):
//
//	func (pc *ProductController) Show(c *ctx.Context) {
//	    id, ok := c.ParamUUID("id")
//	    if !ok {
//	        return
//	    }
//	    c.Success(product)
//	}
//
//	router.Get("/products/{id}", "products.show", ctx.Wrap(pc.Show))
package ctx

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kicksup/kicksup/pkg/bind"
	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/realip"
	"github.com/kicksup/kicksup/pkg/response"
	"github.com/kicksup/kicksup/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUUID parses a path parameter as a UUID. On failure it answers 404
// (an unparsable id cannot name an existing entity) and returns false.
func (c *Context) ParamUUID(key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(key))
	if err != nil {
		c.NotFound(fmt.Sprintf("%s not found", key))
		return uuid.Nil, false
	}
	return id, true
}

// Query returns a query-string value, "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// DefaultQuery returns a query-string value, or def if it is empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// FormFile returns the uploaded file for a multipart field.
func (c *Context) FormFile(name string, maxBytes int64) (multipart.File, *multipart.FileHeader, error) {
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxBytes)
	if err := c.R.ParseMultipartForm(maxBytes); err != nil {
		return nil, nil, err
	}
	return c.R.FormFile(name)
}

// ClientIP returns the client IP. Forwarding headers count only behind a
// trusted proxy, see realip.
func (c *Context) ClientIP() string { return realip.FromRequest(c.R) }

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// ─── Per-request store ────────────────────────────────────────────────────────

func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// GetString returns a string value from the store, or "" if absent.
func (c *Context) GetString(key string) string {
	v, _ := c.Get(key)
	s, _ := v.(string)
	return s
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and validates it. On any failure
// it answers 400 itself and returns false.
//
//	var in CreateProductRequest
//	if !c.BindJSON(&in) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// Validate runs validation rules on an already-populated struct.
func (c *Context) Validate(v any) map[string]string {
	return validate.Struct(v)
}

// ─── Response helpers ─────────────────────────────────────────────────────────

func (c *Context) SetHeader(key, value string) {
	c.W.Header().Set(key, value)
}

// Status writes just the HTTP status code with an empty body.
func (c *Context) Status(code int) {
	c.status = code
	c.W.WriteHeader(code)
}

// NoContent answers 204.
func (c *Context) NoContent() { c.Status(http.StatusNoContent) }

func (c *Context) envelope(code int, body response.Envelope) {
	c.status = code
	body.Status = code
	response.Write(c.W, code, body)
}

// JSON writes v wrapped in the envelope's data field.
func (c *Context) JSON(code int, v any) {
	c.envelope(code, response.Envelope{Data: v})
}

// Success sends a 200 envelope with data.
func (c *Context) Success(data any) { c.JSON(http.StatusOK, data) }

// Created sends a 201 envelope. location, when non-empty, becomes the
// Location header.
func (c *Context) Created(data any, location string) {
	if location != "" {
		c.SetHeader("Location", location)
	}
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 envelope carrying only a message.
func (c *Context) Message(msg string) {
	c.envelope(http.StatusOK, response.Envelope{Message: msg})
}

// Error sends an error envelope.
func (c *Context) Error(code int, message string) {
	c.envelope(code, response.Envelope{Message: message})
}

// Fail sends an error envelope with a detail list.
func (c *Context) Fail(code int, message string, details []string) {
	body := response.Envelope{Message: message}
	if len(details) > 0 {
		body.Errors = details
	}
	c.envelope(code, body)
}

// ValidationError sends a 400 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.envelope(http.StatusBadRequest, response.Envelope{Message: "Validation failed", Errors: errs})
}

// InternalError logs err with the request logger and answers a generic 500.
func (c *Context) InternalError(err error) {
	logger.WithCtx(c.Context()).Error("request failed", "error", err, "path", c.R.URL.Path)
	c.Error(http.StatusInternalServerError, "Internal Server Error")
}

func (c *Context) Unauthorized(message ...string) {
	c.Error(http.StatusUnauthorized, first(message, "Unauthorized"))
}

func (c *Context) Forbidden(message ...string) {
	c.Error(http.StatusForbidden, first(message, "Forbidden"))
}

func (c *Context) NotFound(message ...string) {
	c.Error(http.StatusNotFound, first(message, "Not found"))
}

// WrittenStatus returns the status written so far, 0 if none.
func (c *Context) WrittenStatus() int { return c.status }

func first(msgs []string, def string) string {
	if len(msgs) > 0 && msgs[0] != "" {
		return msgs[0]
	}
	return def
}
