package controllers

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/kicksup/kicksup/pkg/cache"
	"github.com/kicksup/kicksup/pkg/ctx"
	"github.com/kicksup/kicksup/pkg/database"
	"github.com/kicksup/kicksup/pkg/logger"
)

type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

type HealthController struct {
	db      func() *gorm.DB
	timeout time.Duration
}

func NewHealthController(db func() *gorm.DB) *HealthController {
	return &HealthController{db: db, timeout: 2 * time.Second}
}

// Check handles GET /health. Only the database decides the status code;
// Redis is optional and reported for information.
func (hc *HealthController) Check(c *ctx.Context) {
	pctx, cancel := context.WithTimeout(c.Context(), hc.timeout)
	defer cancel()

	out := HealthStatus{Status: "ok", Database: "up", Redis: "disabled"}
	code := http.StatusOK

	if err := database.Ping(pctx, hc.db()); err != nil {
		logger.WithCtx(c.Context()).Warn("health: database down", "error", err)
		out.Status, out.Database = "degraded", "down"
		code = http.StatusServiceUnavailable
	}

	if cache.Enabled() {
		out.Redis = "up"
		if err := cache.Ping(pctx); err != nil {
			out.Redis = "down"
		}
	}

	c.JSON(code, out)
}
