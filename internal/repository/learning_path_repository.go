package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

// PathFilter captures the list-endpoint query parameters.
type PathFilter struct {
	DifficultyLevel string
	Status          string
	Search          string
	OrderBy         string
}

var pathOrderColumns = map[string]string{
	"created_at":               "created_at DESC",
	"updated_at":               "updated_at DESC",
	"title":                    "title ASC",
	"estimated_duration_hours": "estimated_duration_hours ASC",
}

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

func (r *LearningPathRepository) applyFilter(query *gorm.DB, filter PathFilter) *gorm.DB {
	if filter.DifficultyLevel != "" {
		query = query.Where("difficulty_level = ?", filter.DifficultyLevel)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where(
			"title LIKE ? OR description LIKE ? OR tags LIKE ? OR learning_objectives LIKE ?",
			term, term, term, term,
		)
	}

	order, ok := pathOrderColumns[filter.OrderBy]
	if !ok {
		order = "created_at DESC"
	}
	return query.Order(order)
}

func (r *LearningPathRepository) List(viewerID *uint, filter PathFilter, page, limit int) ([]model.LearningPath, int64, error) {
	query := r.DB.Model(&model.LearningPath{}).Scopes(VisibleTo(viewerID))
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var paths []model.LearningPath
	offset := (page - 1) * limit
	err := query.Preload("Creator").
		Preload("PathCourses", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("PathCourses.Course").
		Offset(offset).Limit(limit).
		Find(&paths).Error
	return paths, total, err
}

func (r *LearningPathRepository) ListByCreator(creatorID uint, filter PathFilter, page, limit int) ([]model.LearningPath, int64, error) {
	query := r.DB.Model(&model.LearningPath{}).Where("creator_id = ?", creatorID)
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var paths []model.LearningPath
	offset := (page - 1) * limit
	err := query.Preload("PathCourses", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).
		Preload("PathCourses.Course").
		Offset(offset).Limit(limit).
		Find(&paths).Error
	return paths, total, err
}

func (r *LearningPathRepository) FindByID(id uint) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.Preload("Creator").
		Preload("PathCourses", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("PathCourses.Course").
		First(&path, id).Error
	return &path, err
}

func (r *LearningPathRepository) FindVisibleByID(id uint, viewerID *uint) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.Scopes(VisibleTo(viewerID)).
		Preload("Creator").
		Preload("PathCourses", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("PathCourses.Course").
		First(&path, id).Error
	return &path, err
}

func (r *LearningPathRepository) Create(path *model.LearningPath) error {
	return r.DB.Create(path).Error
}

func (r *LearningPathRepository) Update(path *model.LearningPath) error {
	return r.DB.Save(path).Error
}

func (r *LearningPathRepository) Delete(id uint) error {
	return r.DB.Delete(&model.LearningPath{}, id).Error
}

func (r *LearningPathRepository) CountCourses(pathID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningPathCourse{}).
		Where("learning_path_id = ?", pathID).
		Count(&count).Error
	return count, err
}

// RequiredCourseIDs returns the course ids that count toward path progress.
func (r *LearningPathRepository) RequiredCourseIDs(pathID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.LearningPathCourse{}).
		Where("learning_path_id = ? AND is_required = ?", pathID, true).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *LearningPathRepository) FindPathCourse(pathID, courseID uint) (*model.LearningPathCourse, error) {
	var entry model.LearningPathCourse
	err := r.DB.Where("learning_path_id = ? AND course_id = ?", pathID, courseID).
		First(&entry).Error
	return &entry, err
}

func (r *LearningPathRepository) AddCourse(entry *model.LearningPathCourse) error {
	return r.DB.Create(entry).Error
}

func (r *LearningPathRepository) RemoveCourse(pathID, courseID uint) error {
	return r.DB.Where("learning_path_id = ? AND course_id = ?", pathID, courseID).
		Delete(&model.LearningPathCourse{}).Error
}

// ReplaceCourses swaps the path's full course set for the given ordered ids
// inside one transaction.
func (r *LearningPathRepository) ReplaceCourses(pathID uint, courseIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("learning_path_id = ?", pathID).
			Delete(&model.LearningPathCourse{}).Error; err != nil {
			return err
		}
		for i, courseID := range courseIDs {
			entry := &model.LearningPathCourse{
				LearningPathID: pathID,
				CourseID:       courseID,
				Order:          i + 1,
				IsRequired:     true,
			}
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *LearningPathRepository) CountPublished() (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningPath{}).
		Where("is_public = ? AND status = ?", true, model.StatusPublished).
		Count(&count).Error
	return count, err
}

func (r *LearningPathRepository) CountByCreator(creatorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningPath{}).Where("creator_id = ?", creatorID).Count(&count).Error
	return count, err
}
