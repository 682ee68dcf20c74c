package service

import (
	"errors"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"gorm.io/gorm"
)

type SkillService struct {
	SkillRepo *repository.SkillRepository
}

func NewSkillService(skillRepo *repository.SkillRepository) *SkillService {
	return &SkillService{SkillRepo: skillRepo}
}

func (s *SkillService) ListSkills(userID uint) ([]model.UserSkill, error) {
	return s.SkillRepo.FindByUser(userID)
}

func (s *SkillService) CreateSkill(userID uint, skill *model.UserSkill) error {
	exists, err := s.SkillRepo.ExistsForUser(userID, skill.SkillName)
	if err != nil {
		return err
	}
	if exists {
		return util.ErrDuplicateSkill
	}

	skill.UserID = userID
	return s.SkillRepo.Create(skill)
}

// getOwned loads a skill only if it belongs to the caller; anything else is
// reported as not found, never as forbidden.
func (s *SkillService) getOwned(id, userID uint) (*model.UserSkill, error) {
	skill, err := s.SkillRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}
	if skill.UserID != userID {
		return nil, util.ErrSkillNotFound
	}
	return skill, nil
}

type SkillUpdate struct {
	ProficiencyLevel  *string  `json:"proficiency_level" binding:"omitempty,oneof=novice beginner intermediate advanced expert"`
	YearsOfExperience *float64 `json:"years_of_experience" binding:"omitempty,gte=0"`
	Verified          *bool    `json:"verified"`
	Notes             *string  `json:"notes"`
}

func (s *SkillService) UpdateSkill(id, userID uint, update SkillUpdate) (*model.UserSkill, error) {
	skill, err := s.getOwned(id, userID)
	if err != nil {
		return nil, err
	}

	if update.ProficiencyLevel != nil {
		skill.ProficiencyLevel = model.ProficiencyLevel(*update.ProficiencyLevel)
	}
	if update.YearsOfExperience != nil {
		skill.YearsOfExperience = *update.YearsOfExperience
	}
	if update.Verified != nil {
		skill.Verified = *update.Verified
	}
	if update.Notes != nil {
		skill.Notes = *update.Notes
	}

	if err := s.SkillRepo.Update(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) DeleteSkill(id, userID uint) error {
	if _, err := s.getOwned(id, userID); err != nil {
		return err
	}
	return s.SkillRepo.Delete(id)
}
