package controllers

import (
	"github.com/google/uuid"
	"github.com/samber/mo"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/repositories"
	"github.com/kicksup/kicksup/app/services"
	"github.com/kicksup/kicksup/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
	urls    URLBuilder
}

func NewOrderController(service *services.OrderService, urls URLBuilder) *OrderController {
	return &OrderController{service: service, urls: urls}
}

// Index handles GET /api/orders. Clients only ever see their own orders;
// administrators see everything and may narrow by userId.
func (oc *OrderController) Index(c *ctx.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}

	var f repositories.OrderFilter
	errs := map[string]string{}

	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseOrderStatus(raw)
		if err != nil {
			errs["status"] = err.Error()
		} else {
			f.Status = mo.Some(status)
		}
	}

	if isAdmin(c) {
		if raw := c.Query("userId"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				errs["userId"] = "invalid id"
			} else {
				f.UserID = mo.Some(id)
			}
		}
	} else {
		f.UserID = mo.Some(uid)
	}

	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	res, err := oc.service.GetAll(c.Context(), f)
	if err != nil {
		c.InternalError(err)
		return
	}
	c.Success(res.Data)
}

// Show handles GET /api/orders/{id}.
func (oc *OrderController) Show(c *ctx.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}
	id, ok := c.ParamUUID("id")
	if !ok {
		return
	}

	res, err := oc.service.GetByID(c.Context(), id)
	if err != nil {
		c.InternalError(err)
		return
	}
	if !res.OK {
		fail(c, res)
		return
	}
	if !isAdmin(c) && res.Data.UserID != uid {
		c.Forbidden()
		return
	}
	c.Success(res.Data)
}

// Store handles POST /api/orders. The owner is always the caller.
func (oc *OrderController) Store(c *ctx.Context) {
	uid, ok := caller(c)
	if !ok {
		return
	}
	var body services.CreateOrderRequest
	if !c.BindJSON(&body) {
		return
	}

	res, err := oc.service.Create(c.Context(), uid, body)
	if err != nil {
		c.InternalError(err)
		return
	}
	if !res.OK {
		fail(c, res)
		return
	}
	c.Created(res.Data, location(oc.urls, "orders.show", res.Data.ID))
}

// UpdateStatus handles PATCH /api/orders/{id}/status.
func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	id, ok := c.ParamUUID("id")
	if !ok {
		return
	}
	var body services.UpdateOrderStatusRequest
	if !c.BindJSON(&body) {
		return
	}

	res, err := oc.service.UpdateStatus(c.Context(), id, body.Status)
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

// Destroy handles DELETE /api/orders/{id}.
func (oc *OrderController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUUID("id")
	if !ok {
		return
	}
	res, err := oc.service.Delete(c.Context(), id)
	if err != nil {
		c.InternalError(err)
		return
	}
	if !res.OK {
		fail(c, res)
		return
	}
	c.NoContent()
}
