package handler

import (
	"fmt"
	"net/http"

	"note-service/internal/middleware"
	"note-service/internal/model"
	"note-service/internal/store"
	"note-service/pkg/logger"
	"note-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantHandler serves the plan upgrade operation.
type TenantHandler struct {
	tenants *store.TenantStore
}

func NewTenantHandler(tenants *store.TenantStore) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// UpgradeTenant transitions the caller's own tenant from FREE to PRO.
// Only admins may upgrade, and only the tenant they belong to: the slug
// must match the session's tenant id, so a guessed foreign slug yields
// the same 404 as a nonexistent one. A second upgrade is a no-op 200.
func (h *TenantHandler) UpgradeTenant(c echo.Context) error {
	log := logger.FromContext(c)

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	if session.Role != model.RoleAdmin {
		log.Warn("Non-admin attempted plan upgrade")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only admins can upgrade plans"})
	}

	slug := c.Param("slug")
	tenant, err := h.tenants.FindBySlugForTenant(slug, session.TenantID)
	if err != nil {
		log.Error("Failed to look up tenant", zap.String("slug", slug), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if tenant == nil {
		log.Warn("Tenant not found or access denied", zap.String("slug", slug))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found or access denied"})
	}

	if err := h.tenants.UpgradePlan(tenant.ID); err != nil {
		log.Error("Failed to upgrade tenant plan", zap.Uint("tenant_id", tenant.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	prometheus.TenantUpgradeCounter.Inc()
	log.Info("Tenant upgraded to PRO",
		zap.Uint("tenant_id", tenant.ID),
		zap.String("slug", tenant.Slug))

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Tenant %s successfully upgraded to PRO plan.", tenant.Name),
	})
}
