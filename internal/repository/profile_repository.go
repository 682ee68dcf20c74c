package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByID(id uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.DB.First(&profile, id).Error
	return &profile, err
}

func (r *ProfileRepository) FindByUserID(userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

// ListVisible pages through profiles the viewer may see: staff see all,
// everyone else sees public profiles plus their own.
func (r *ProfileRepository) ListVisible(viewerID uint, staff bool, page, limit int) ([]model.UserProfile, int64, error) {
	query := r.DB.Model(&model.UserProfile{})
	if !staff {
		query = query.Where("public_profile = ? OR user_id = ?", true, viewerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []model.UserProfile
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&profiles).Error
	return profiles, total, err
}

func (r *ProfileRepository) Update(profile *model.UserProfile) error {
	return r.DB.Save(profile).Error
}

func (r *ProfileRepository) ClearFirstLogin(userID uint) error {
	return r.DB.Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Update("first_login", false).
		Error
}
