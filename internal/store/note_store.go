package store

import (
	"errors"
	"time"

	"note-service/internal/model"
	"note-service/prometheus"

	"gorm.io/gorm"
)

// NoteStore is the tenant-scoped access layer for notes. Every method
// takes the caller's tenant id and conjoins it with any other predicate;
// a note id alone never selects a row. Update and Delete are bulk
// predicate operations on purpose: a foreign tenant's note id matches
// zero rows, which is indistinguishable from a missing row, so the API
// cannot be used to probe another tenant's data.
type NoteStore struct {
	db *gorm.DB
}

func NewNoteStore(db *gorm.DB) *NoteStore {
	return &NoteStore{db: db}
}

// FindOne returns the note with the given id if it belongs to the
// tenant, or nil when no such row is visible to the tenant.
func (s *NoteStore) FindOne(tenantID, noteID uint) (*model.Note, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var note model.Note
	result := s.db.Where("id = ? AND tenant_id = ?", noteID, tenantID).First(&note)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &note, nil
}

// List returns all of the tenant's notes, newest first.
func (s *NoteStore) List(tenantID uint) ([]model.Note, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	notes := []model.Note{}
	result := s.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Find(&notes)
	if result.Error != nil {
		return nil, result.Error
	}
	return notes, nil
}

// Create inserts a new note owned by the tenant. The id and timestamps
// are assigned by the store.
func (s *NoteStore) Create(tenantID uint, title, content string) (*model.Note, error) {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	note := model.Note{
		Title:    title,
		Content:  content,
		TenantID: tenantID,
	}
	if result := s.db.Create(&note); result.Error != nil {
		return nil, result.Error
	}
	return &note, nil
}

// Update modifies title and content of the tenant's note and returns
// the number of rows matched. Zero means the note does not exist or
// belongs to another tenant; callers must not distinguish the two.
func (s *NoteStore) Update(tenantID, noteID uint, title, content string) (int64, error) {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := s.db.Model(&model.Note{}).
		Where("id = ? AND tenant_id = ?", noteID, tenantID).
		Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete removes the tenant's note and returns the number of rows
// matched, with the same zero-row semantics as Update.
func (s *NoteStore) Delete(tenantID, noteID uint) (int64, error) {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := s.db.
		Where("id = ? AND tenant_id = ?", noteID, tenantID).
		Delete(&model.Note{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Count returns the number of notes owned by the tenant.
func (s *NoteStore) Count(tenantID uint) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var count int64
	result := s.db.Model(&model.Note{}).
		Where("tenant_id = ?", tenantID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
