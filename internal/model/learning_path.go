package model

import (
	"strings"
	"time"
)

// swagger:model LearningPath
type LearningPath struct {
	BaseModel
	Title                  string          `gorm:"size:200;not null" json:"title"`
	Description            string          `gorm:"type:text;not null" json:"description"`
	CreatorID              uint            `gorm:"index;not null" json:"creator_id"`
	Creator                *User           `gorm:"constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	DifficultyLevel        DifficultyLevel `gorm:"size:20;default:'beginner'" json:"difficulty_level"`
	EstimatedDurationHours uint            `gorm:"not null" json:"estimated_duration_hours"`
	Status                 ContentStatus   `gorm:"size:20;default:'draft'" json:"status"`
	Tags                   string          `gorm:"size:500" json:"tags"`
	Prerequisites          string          `gorm:"type:text" json:"prerequisites"`
	LearningObjectives     string          `gorm:"type:text;not null" json:"learning_objectives"`
	// No column default, same reasoning as Course.IsPublic: false must
	// survive the insert.
	IsPublic bool `json:"is_public"`

	PathCourses []LearningPathCourse `gorm:"constraint:OnDelete:CASCADE" json:"path_courses,omitempty"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

func (p *LearningPath) TagList() []string {
	var out []string
	for _, tag := range strings.Split(p.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// LearningPathCourse orders a course inside a path. Only entries with
// IsRequired set count toward derived path progress.
// swagger:model LearningPathCourse
type LearningPathCourse struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	LearningPathID uint    `gorm:"uniqueIndex:idx_path_course;not null" json:"learning_path_id"`
	CourseID       uint    `gorm:"uniqueIndex:idx_path_course;not null" json:"course_id"`
	Course         *Course `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty"`
	Order          int     `gorm:"column:sort_order;default:1" json:"order"`
	// No column default: an optional entry (false) must not be flipped to
	// required by the DB, or it would count toward derived progress.
	IsRequired bool `json:"is_required"`
	Notes          string  `gorm:"type:text" json:"notes"`
}

func (LearningPathCourse) TableName() string {
	return "learning_path_courses"
}

// UserLearningProgress tracks a user through a path. The completion
// percentage is intentionally absent: it is derived from required course
// completion on every read so path-level and course-level state cannot drift.
// swagger:model UserLearningProgress
type UserLearningProgress struct {
	ID              uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint          `gorm:"uniqueIndex:idx_user_path;not null" json:"user_id"`
	User            *User         `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	LearningPathID  uint          `gorm:"uniqueIndex:idx_user_path;not null" json:"learning_path_id"`
	LearningPath    *LearningPath `gorm:"constraint:OnDelete:CASCADE" json:"learning_path,omitempty"`
	StartedAt       time.Time     `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt     *time.Time    `json:"completed_at"`
	CurrentCourseID *uint         `json:"current_course_id"`
	CurrentCourse   *Course       `gorm:"constraint:OnDelete:SET NULL" json:"current_course,omitempty"`
	Notes           string        `gorm:"type:text" json:"notes"`
}

func (UserLearningProgress) TableName() string {
	return "user_learning_progress"
}

func (p *UserLearningProgress) IsCompleted() bool {
	return p.CompletedAt != nil
}
