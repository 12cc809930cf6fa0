package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"note-service/internal/model"
)

func TestUpgradeTenant(t *testing.T) {
	app := newTestApp(t)
	acme := app.seedTenant(t, "Acme", "acme", model.PlanFree)
	globex := app.seedTenant(t, "Globex", "globex", model.PlanFree)
	acmeAdmin := app.seedUser(t, "admin@acme.test", "password", model.RoleAdmin, acme.ID)
	acmeMember := app.seedUser(t, "user@acme.test", "password", model.RoleMember, acme.ID)

	adminToken := app.tokenFor(t, acmeAdmin)
	memberToken := app.tokenFor(t, acmeMember)

	t.Run("member is forbidden", func(t *testing.T) {
		rec := app.request(http.MethodPost, "/api/tenants/acme/upgrade", memberToken, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin cannot upgrade another tenant's slug", func(t *testing.T) {
		rec := app.request(http.MethodPost, "/api/tenants/globex/upgrade", adminToken, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var tenant model.Tenant
		require.NoError(t, app.db.First(&tenant, globex.ID).Error)
		assert.Equal(t, model.PlanFree, tenant.Plan)
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		rec := app.request(http.MethodPost, "/api/tenants/initech/upgrade", adminToken, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("admin upgrades own tenant", func(t *testing.T) {
		rec := app.request(http.MethodPost, "/api/tenants/acme/upgrade", adminToken, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Acme")
		assert.Contains(t, rec.Body.String(), "PRO")

		var tenant model.Tenant
		require.NoError(t, app.db.First(&tenant, acme.ID).Error)
		assert.Equal(t, model.PlanPro, tenant.Plan)
	})

	t.Run("second upgrade is a no-op success", func(t *testing.T) {
		rec := app.request(http.MethodPost, "/api/tenants/acme/upgrade", adminToken, "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var tenant model.Tenant
		require.NoError(t, app.db.First(&tenant, acme.ID).Error)
		assert.Equal(t, model.PlanPro, tenant.Plan)
	})
}

func TestUpgradeAfterQuotaUnlocksCreation(t *testing.T) {
	app := newTestApp(t)
	acme := app.seedTenant(t, "Acme", "acme", model.PlanFree)
	admin := app.seedUser(t, "admin@acme.test", "password", model.RoleAdmin, acme.ID)
	token := app.tokenFor(t, admin)

	for i := 0; i < 3; i++ {
		rec := app.request(http.MethodPost, "/api/notes", token, `{"title":"n","content":""}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := app.request(http.MethodPost, "/api/notes", token, `{"title":"blocked","content":""}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.request(http.MethodPost, "/api/tenants/acme/upgrade", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(http.MethodPost, "/api/notes", token, `{"title":"unblocked","content":""}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
