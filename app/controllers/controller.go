// Package controllers shapes HTTP requests into service calls and service
// results into responses.
package controllers

import (
	"github.com/google/uuid"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/ctx"
	"github.com/kicksup/kicksup/pkg/middleware"
	"github.com/kicksup/kicksup/pkg/result"
)

// URLBuilder resolves a named route, used for Location headers.
type URLBuilder interface {
	URL(name string, params map[string]string) (string, error)
}

// fail writes a failed result with the status its kind maps to.
func fail[T any](c *ctx.Context, res result.Result[T]) {
	c.Fail(res.Status(), res.Message, res.Errors)
}

// caller returns the authenticated user id. It answers 401 itself when the
// request carries no identity.
func caller(c *ctx.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromCtx(c.R)
	if !ok {
		c.Unauthorized()
		return uuid.Nil, false
	}
	return id, true
}

func isAdmin(c *ctx.Context) bool {
	role, _ := middleware.RoleFromCtx(c.R)
	return role == models.RoleAdministrator.String()
}

func location(urls URLBuilder, name string, id uuid.UUID) string {
	if urls == nil {
		return ""
	}
	u, err := urls.URL(name, map[string]string{"id": id.String()})
	if err != nil {
		return ""
	}
	return u
}
