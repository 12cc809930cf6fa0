package entitlement

import (
	"fmt"

	"note-service/internal/model"
	"note-service/internal/store"
)

// FreePlanNoteLimit is the maximum number of notes a FREE tenant may
// hold. PRO tenants are uncapped.
const FreePlanNoteLimit = 3

// Checker decides whether a tenant may create another note. The count
// runs through the tenant-scoped store, so it can only ever see the
// caller's own rows. Count-then-create is not transactional: two
// concurrent creations at the boundary can overshoot the limit by one.
// The quota is a soft limit and that race is accepted.
type Checker struct {
	tenants *store.TenantStore
	notes   *store.NoteStore
}

func NewChecker(tenants *store.TenantStore, notes *store.NoteStore) *Checker {
	return &Checker{tenants: tenants, notes: notes}
}

// CanCreateNote reports whether the tenant is under its plan quota.
func (ch *Checker) CanCreateNote(tenantID uint) (bool, error) {
	tenant, err := ch.tenants.FindByID(tenantID)
	if err != nil {
		return false, err
	}
	if tenant == nil {
		return false, fmt.Errorf("tenant %d not found", tenantID)
	}

	if tenant.Plan != model.PlanFree {
		return true, nil
	}

	count, err := ch.notes.Count(tenantID)
	if err != nil {
		return false, err
	}
	return count < FreePlanNoteLimit, nil
}
