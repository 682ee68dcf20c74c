package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type CourseProgressRepository struct {
	DB *gorm.DB
}

func NewCourseProgressRepository(db *gorm.DB) *CourseProgressRepository {
	return &CourseProgressRepository{DB: db}
}

func (r *CourseProgressRepository) FindByID(id uint) (*model.UserCourseProgress, error) {
	var progress model.UserCourseProgress
	err := r.DB.Preload("Course").First(&progress, id).Error
	return &progress, err
}

func (r *CourseProgressRepository) FindByUserAndCourse(userID, courseID uint) (*model.UserCourseProgress, error) {
	var progress model.UserCourseProgress
	err := r.DB.Preload("Course").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	return &progress, err
}

func (r *CourseProgressRepository) ListByUser(userID uint, page, limit int) ([]model.UserCourseProgress, int64, error) {
	query := r.DB.Model(&model.UserCourseProgress{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.UserCourseProgress
	offset := (page - 1) * limit
	err := query.Order("started_at DESC").
		Offset(offset).Limit(limit).
		Preload("Course").
		Find(&records).Error
	return records, total, err
}

func (r *CourseProgressRepository) ListRecentByUser(userID uint, limit int) ([]model.UserCourseProgress, error) {
	var records []model.UserCourseProgress
	err := r.DB.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Preload("Course").
		Find(&records).Error
	return records, err
}

func (r *CourseProgressRepository) Create(progress *model.UserCourseProgress) error {
	return r.DB.Create(progress).Error
}

func (r *CourseProgressRepository) Update(progress *model.UserCourseProgress) error {
	return r.DB.Save(progress).Error
}

// CountCompletedIn counts the user's completed courses among the given ids.
func (r *CourseProgressRepository) CountCompletedIn(userID uint, courseIDs []uint) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.UserCourseProgress{}).
		Where("user_id = ? AND course_id IN ? AND completed_at IS NOT NULL", userID, courseIDs).
		Distinct("course_id").
		Count(&count).Error
	return count, err
}

func (r *CourseProgressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserCourseProgress{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *CourseProgressRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserCourseProgress{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *CourseProgressRepository) SumPercentageByUser(userID uint) (float64, error) {
	var sum float64
	err := r.DB.Model(&model.UserCourseProgress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(progress_percentage), 0)").
		Scan(&sum).Error
	return sum, err
}
