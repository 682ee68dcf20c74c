package service

import "learning_path_backend/internal/model"

// Object-level access checks shared by courses and learning paths. List
// queries are already narrowed by repository.VisibleTo; these predicates
// guard single-object reads and writes.

// CanView reports whether the requester may read an entity. Public published
// entities are readable by anyone, including anonymous requesters; owners may
// always read their own entities regardless of visibility flags or status.
func CanView(viewerID *uint, creatorID uint, isPublic bool, status model.ContentStatus) bool {
	if isPublic && status == model.StatusPublished {
		return true
	}
	return viewerID != nil && *viewerID == creatorID
}

// CanModify permits writes to the creator only. Ownership never extends to
// other users, staff included.
func CanModify(viewerID *uint, creatorID uint) bool {
	return viewerID != nil && *viewerID == creatorID
}
