package model

import (
	"fmt"
	"strings"
	"time"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

type CourseType string

const (
	TypeVideo       CourseType = "video"
	TypeText        CourseType = "text"
	TypeInteractive CourseType = "interactive"
	TypeProject     CourseType = "project"
	TypeBook        CourseType = "book"
	TypeArticle     CourseType = "article"
	TypeTutorial    CourseType = "tutorial"
	TypeWorkshop    CourseType = "workshop"
)

type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusArchived  ContentStatus = "archived"
)

// Course is an external learning resource catalogued by a user. Rating and
// TotalRatings are aggregate fields: they are recomputed from the review set
// on every review write and are never independently writable.
// swagger:model Course
type Course struct {
	BaseModel
	Title                string          `gorm:"size:200;not null" json:"title"`
	Description          string          `gorm:"type:text;not null" json:"description"`
	ShortDescription     string          `gorm:"size:300" json:"short_description"`
	CreatorID            uint            `gorm:"index;not null" json:"creator_id"`
	Creator              *User           `gorm:"constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	CategoryID           *uint           `gorm:"index" json:"category_id"`
	Category             *Category       `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	DifficultyLevel      DifficultyLevel `gorm:"size:20;default:'beginner'" json:"difficulty_level"`
	CourseType           CourseType      `gorm:"size:20;default:'video'" json:"course_type"`
	DurationHours        uint            `gorm:"not null" json:"duration_hours"`
	URL                  string          `gorm:"size:200;not null" json:"url"`
	Instructor           string          `gorm:"size:200" json:"instructor"`
	Platform             string          `gorm:"size:100" json:"platform"`
	Price                float64         `gorm:"type:decimal(10,2);default:0" json:"price"`
	Rating               *float64        `gorm:"type:decimal(3,2)" json:"rating"`
	TotalRatings         uint            `gorm:"default:0" json:"total_ratings"`
	Status               ContentStatus   `gorm:"size:20;default:'published'" json:"status"`
	Tags                 string          `gorm:"size:500" json:"tags"`
	Prerequisites        string          `gorm:"type:text" json:"prerequisites"`
	LearningOutcomes     string          `gorm:"type:text" json:"learning_outcomes"`
	Language             string          `gorm:"size:50;default:'English'" json:"language"`
	CertificateAvailable bool            `json:"certificate_available"`
	// No column default: GORM omits zero-valued fields on insert, so a DB
	// default of true would silently republish courses created private.
	IsPublic bool `json:"is_public"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) IsFree() bool {
	return c.Price == 0
}

func (c *Course) TagList() []string {
	var out []string
	for _, tag := range strings.Split(c.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func (c *Course) AverageRatingDisplay() string {
	if c.Rating == nil {
		return "No ratings yet"
	}
	return fmt.Sprintf("%.1f/5.0", *c.Rating)
}

// CourseReview is one user's rating of a course, unique per (course, user).
// swagger:model CourseReview
type CourseReview struct {
	BaseModel
	CourseID   uint    `gorm:"uniqueIndex:idx_course_reviewer;not null" json:"course_id"`
	Course     *Course `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty"`
	UserID     uint    `gorm:"uniqueIndex:idx_course_reviewer;not null" json:"user_id"`
	User       *User   `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Rating     int     `gorm:"not null" json:"rating"`
	ReviewText string  `gorm:"type:text" json:"review_text"`
}

func (CourseReview) TableName() string {
	return "course_reviews"
}

// UserCourseProgress stores course completion state directly. A non-nil
// CompletedAt is the sole completion signal.
// swagger:model UserCourseProgress
type UserCourseProgress struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"user_id"`
	User               *User      `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CourseID           uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"course_id"`
	Course             *Course    `gorm:"constraint:OnDelete:CASCADE" json:"course,omitempty"`
	StartedAt          time.Time  `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	ProgressPercentage int        `gorm:"default:0" json:"progress_percentage"`
	TimeSpentHours     float64    `gorm:"type:decimal(6,2);default:0" json:"time_spent_hours"`
	Notes              string     `gorm:"type:text" json:"notes"`
}

func (UserCourseProgress) TableName() string {
	return "user_course_progress"
}

func (p *UserCourseProgress) IsCompleted() bool {
	return p.CompletedAt != nil
}
