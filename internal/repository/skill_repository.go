package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) FindByID(id uint) (*model.UserSkill, error) {
	var skill model.UserSkill
	err := r.DB.First(&skill, id).Error
	return &skill, err
}

func (r *SkillRepository) FindByUser(userID uint) ([]model.UserSkill, error) {
	var skills []model.UserSkill
	err := r.DB.Where("user_id = ?", userID).
		Order("proficiency_level DESC, skill_name ASC").
		Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) ExistsForUser(userID uint, skillName string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserSkill{}).
		Where("user_id = ? AND skill_name = ?", userID, skillName).
		Count(&count).Error
	return count > 0, err
}

func (r *SkillRepository) Create(skill *model.UserSkill) error {
	return r.DB.Create(skill).Error
}

func (r *SkillRepository) Update(skill *model.UserSkill) error {
	return r.DB.Save(skill).Error
}

func (r *SkillRepository) Delete(id uint) error {
	return r.DB.Delete(&model.UserSkill{}, id).Error
}
