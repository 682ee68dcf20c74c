package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type PathProgressRepository struct {
	DB *gorm.DB
}

func NewPathProgressRepository(db *gorm.DB) *PathProgressRepository {
	return &PathProgressRepository{DB: db}
}

func (r *PathProgressRepository) FindByID(id uint) (*model.UserLearningProgress, error) {
	var progress model.UserLearningProgress
	err := r.DB.Preload("LearningPath").Preload("CurrentCourse").First(&progress, id).Error
	return &progress, err
}

func (r *PathProgressRepository) FindByUserAndPath(userID, pathID uint) (*model.UserLearningProgress, error) {
	var progress model.UserLearningProgress
	err := r.DB.Preload("LearningPath").Preload("CurrentCourse").
		Where("user_id = ? AND learning_path_id = ?", userID, pathID).
		First(&progress).Error
	return &progress, err
}

func (r *PathProgressRepository) ListByUser(userID uint, page, limit int) ([]model.UserLearningProgress, int64, error) {
	query := r.DB.Model(&model.UserLearningProgress{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.UserLearningProgress
	offset := (page - 1) * limit
	err := query.Order("started_at DESC").
		Offset(offset).Limit(limit).
		Preload("LearningPath").Preload("CurrentCourse").
		Find(&records).Error
	return records, total, err
}

func (r *PathProgressRepository) ListAllByUser(userID uint) ([]model.UserLearningProgress, error) {
	var records []model.UserLearningProgress
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

func (r *PathProgressRepository) ListRecentByUser(userID uint, limit int) ([]model.UserLearningProgress, error) {
	var records []model.UserLearningProgress
	err := r.DB.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Preload("LearningPath").
		Find(&records).Error
	return records, err
}

func (r *PathProgressRepository) Create(progress *model.UserLearningProgress) error {
	return r.DB.Create(progress).Error
}

func (r *PathProgressRepository) Update(progress *model.UserLearningProgress) error {
	return r.DB.Save(progress).Error
}

func (r *PathProgressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserLearningProgress{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PathProgressRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserLearningProgress{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&count).Error
	return count, err
}
