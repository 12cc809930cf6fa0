package store

import (
	"errors"
	"time"

	"note-service/internal/model"
	"note-service/prometheus"

	"gorm.io/gorm"
)

// TenantStore provides tenant lookups and the plan mutation used by the
// upgrade authority.
type TenantStore struct {
	db *gorm.DB
}

func NewTenantStore(db *gorm.DB) *TenantStore {
	return &TenantStore{db: db}
}

// FindByID returns the tenant with the given id, or nil if absent.
func (s *TenantStore) FindByID(tenantID uint) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenant model.Tenant
	result := s.db.First(&tenant, tenantID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &tenant, nil
}

// FindBySlugForTenant resolves a tenant by slug AND id together. The
// slug is a confirmation parameter, not an independent lookup key: an
// admin who guesses another tenant's slug matches nothing, because
// their own tenant id is part of the predicate.
func (s *TenantStore) FindBySlugForTenant(slug string, tenantID uint) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenant model.Tenant
	result := s.db.Where("slug = ? AND id = ?", slug, tenantID).First(&tenant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &tenant, nil
}

// UpgradePlan sets the tenant's plan to PRO. Upgrading an already-PRO
// tenant is a no-op success.
func (s *TenantStore) UpgradePlan(tenantID uint) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := s.db.Model(&model.Tenant{}).
		Where("id = ?", tenantID).
		Update("plan", model.PlanPro)
	return result.Error
}
