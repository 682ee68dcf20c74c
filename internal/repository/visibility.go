package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

// VisibleTo narrows a course or learning-path query to what the requester may
// read: anonymous viewers get public published rows only, authenticated
// viewers additionally get everything they created. Both entity types share
// the is_public/status/creator_id columns, so one scope serves both.
func VisibleTo(viewerID *uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewerID == nil {
			return db.Where("is_public = ? AND status = ?", true, model.StatusPublished)
		}
		return db.Where("(is_public = ? AND status = ?) OR creator_id = ?",
			true, model.StatusPublished, *viewerID)
	}
}
