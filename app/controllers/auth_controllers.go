package controllers

import (
	"github.com/kicksup/kicksup/app/services"
	"github.com/kicksup/kicksup/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *ctx.Context) {
	var body services.LoginRequest
	if !c.BindJSON(&body) {
		return
	}

	res, err := ac.service.Login(c.Context(), body)
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

// Register handles POST /api/auth/register.
func (ac *AuthController) Register(c *ctx.Context) {
	var body services.RegisterRequest
	if !c.BindJSON(&body) {
		return
	}

	res, err := ac.service.Register(c.Context(), body)
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
