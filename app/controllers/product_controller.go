package controllers

import (
	"github.com/samber/mo"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/repositories"
	"github.com/kicksup/kicksup/app/services"
	"github.com/kicksup/kicksup/pkg/ctx"
)

type ProductController struct {
	service *services.ProductService
	urls    URLBuilder
}

func NewProductController(service *services.ProductService, urls URLBuilder) *ProductController {
	return &ProductController{service: service, urls: urls}
}

// filter reads searchTerm, size and color. Size and color accept the name
// or the number.
func (pc *ProductController) filter(c *ctx.Context) (repositories.ProductFilter, bool) {
	f := repositories.ProductFilter{SearchTerm: c.Query("searchTerm")}
	errs := map[string]string{}

	if raw := c.Query("size"); raw != "" {
		size, err := models.ParseSize(raw)
		if err != nil {
			errs["size"] = err.Error()
		} else {
			f.Size = mo.Some(size)
		}
	}
	if raw := c.Query("color"); raw != "" {
		color, err := models.ParseColor(raw)
		if err != nil {
			errs["color"] = err.Error()
		} else {
			f.Color = mo.Some(color)
		}
	}
	if len(errs) > 0 {
		c.ValidationError(errs)
		return f, false
	}
	return f, true
}

// Index handles GET /api/products.
func (pc *ProductController) Index(c *ctx.Context) {
	f, ok := pc.filter(c)
	if !ok {
		return
	}
	res, err := pc.service.List(c.Context(), f)
	if err != nil {
		c.InternalError(err)
		return
	}
	c.Success(res.Data)
}

// Show handles GET /api/products/{id}.
func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := c.ParamUUID("id")
	if !ok {
		return
	}
	res, err := pc.service.GetByID(c.Context(), id)
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

// Store handles POST /api/products.
func (pc *ProductController) Store(c *ctx.Context) {
	var body services.ProductRequest
	if !c.BindJSON(&body) {
		return
	}
	res, err := pc.service.Create(c.Context(), body)
	if err != nil {
		c.InternalError(err)
		return
	}
	if !res.OK {
		fail(c, res)
		return
	}
	c.Created(res.Data, location(pc.urls, "products.show", res.Data.ID))
}

// Update handles PUT /api/products/{id}.
func (pc *ProductController) Update(c *ctx.Context) {
	id, ok := c.ParamUUID("id")
	if !ok {
		return
	}
	var body services.ProductRequest
	if !c.BindJSON(&body) {
		return
	}
	res, err := pc.service.Update(c.Context(), id, body)
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

// Destroy handles DELETE /api/products/{id}.
func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUUID("id")
	if !ok {
		return
	}
	res, err := pc.service.Delete(c.Context(), id)
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
