package controllers

import (
	"github.com/kicksup/kicksup/app/services"
	"github.com/kicksup/kicksup/pkg/ctx"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// Profile handles GET /api/users/profile.
func (uc *UserController) Profile(c *ctx.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}
	res, err := uc.service.GetProfile(c.Context(), uid)
	if err != nil {
		c.InternalError(err)
		return
	}
	if !res.OK {
		fail(c, res)
		return
	}
	c.Success(res.Data)
}

// UpdateProfile handles PUT /api/users/profile.
func (uc *UserController) UpdateProfile(c *ctx.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}
	var body services.UpdateProfileRequest
	if !c.BindJSON(&body) {
		return
	}
	res, err := uc.service.UpdateProfile(c.Context(), uid, body)
	if err != nil {
		c.InternalError(err)
		return
	}
	if !res.OK {
		fail(c, res)
		return
	}
	c.Success(res.Data)
}

func (uc *UserController) Index(c *ctx.Context) {
	res, err := uc.service.GetAllUsers(c.Context())
	if err != nil {
		c.InternalError(err)
		return
	}
	c.Success(res.Data)
}

// Destroy handles DELETE /api/users/{id}. Users with orders are refused.
func (uc *UserController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUUID("id")
	if !ok {
		return
	}
	res, err := uc.service.DeleteUser(c.Context(), id)
	if err != nil {
		c.InternalError(err)
		return
	}
	if !res.OK {
		fail(c, res)
		return
	}
	c.Message("User deleted")
}

// UpdateRole handles PUT /api/users/{id}/role.
func (uc *UserController) UpdateRole(c *ctx.Context) {
	id, ok := c.ParamUUID("id")
	if !ok {
		return
	}
	var body services.UpdateRoleRequest
	if !c.BindJSON(&body) {
		return
	}
	res, err := uc.service.UpdateUserRole(c.Context(), id, body.Role)
	if err != nil {
		c.InternalError(err)
		return
	}
	if !res.OK {
		fail(c, res)
		return
	}
	c.Message("Role updated")
}
