package handler

import (
	"net/http"
	"strconv"

	"note-service/internal/entitlement"
	"note-service/internal/middleware"
	"note-service/internal/store"
	"note-service/pkg/logger"
	"note-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NoteHandler serves the tenant-scoped note CRUD. Every operation takes
// its tenant id from the authenticated session, never from the request.
type NoteHandler struct {
	notes   *store.NoteStore
	checker *entitlement.Checker
}

func NewNoteHandler(notes *store.NoteStore, checker *entitlement.Checker) *NoteHandler {
	return &NoteHandler{notes: notes, checker: checker}
}

// NoteRequest defines the structure for note creation/update requests
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListNotes returns all of the caller's tenant's notes, newest first.
func (h *NoteHandler) ListNotes(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("list")

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	notes, err := h.notes.List(session.TenantID)
	if err != nil {
		log.Error("Failed to list notes", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve notes"})
	}

	log.Info("Notes listed", zap.Int("count", len(notes)))
	return c.JSON(http.StatusOK, notes)
}

// CreateNote creates a note for the caller's tenant after the plan
// quota check.
func (h *NoteHandler) CreateNote(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("create")

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	allowed, err := h.checker.CanCreateNote(session.TenantID)
	if err != nil {
		log.Error("Quota check failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create note"})
	}
	if !allowed {
		log.Warn("Note creation rejected by plan quota")
		prometheus.RecordQuotaExceeded(session.TenantID)
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Note limit reached. Please upgrade to Pro."})
	}

	note, err := h.notes.Create(session.TenantID, req.Title, req.Content)
	if err != nil {
		log.Error("Failed to create note", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create note"})
	}

	go h.updateNoteCount(session.TenantID)

	log.Info("Note created", zap.Uint("note_id", note.ID))
	return c.JSON(http.StatusCreated, note)
}

// GetNote retrieves one of the caller's tenant's notes by id.
func (h *NoteHandler) GetNote(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("get")

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid note ID"})
	}

	note, err := h.notes.FindOne(session.TenantID, uint(id))
	if err != nil {
		log.Error("Failed to retrieve note", zap.Uint64("note_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve note"})
	}
	if note == nil {
		// Absent and owned-by-another-tenant answer identically
		log.Warn("Note not found for tenant", zap.Uint64("note_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
	}

	return c.JSON(http.StatusOK, note)
}

// UpdateNote updates title and content of the caller's tenant's note.
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("update")

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid note ID"})
	}

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint64("note_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	affected, err := h.notes.Update(session.TenantID, uint(id), req.Title, req.Content)
	if err != nil {
		log.Error("Failed to update note", zap.Uint64("note_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update note"})
	}
	if affected == 0 {
		log.Warn("Note not found for tenant", zap.Uint64("note_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
	}

	log.Info("Note updated", zap.Uint64("note_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Note updated successfully"})
}

// DeleteNote deletes the caller's tenant's note.
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("delete")

	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid note ID"})
	}

	affected, err := h.notes.Delete(session.TenantID, uint(id))
	if err != nil {
		log.Error("Failed to delete note", zap.Uint64("note_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete note"})
	}
	if affected == 0 {
		log.Warn("Note not found for tenant", zap.Uint64("note_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
	}

	go h.updateNoteCount(session.TenantID)

	log.Info("Note deleted", zap.Uint64("note_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Note deleted successfully"})
}

// Helper to keep the notes-per-tenant gauge current
func (h *NoteHandler) updateNoteCount(tenantID uint) {
	count, err := h.notes.Count(tenantID)
	if err != nil {
		return
	}
	prometheus.UpdateNotesPerTenant(tenantID, count)
}
