package model

import (
	"strings"
	"time"
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
	StyleReading     LearningStyle = "reading"
	StyleMixed       LearningStyle = "mixed"
)

// UserProfile holds the extended account data. Every user owns exactly one
// profile; it is created in the same transaction as the user row.
// swagger:model UserProfile
type UserProfile struct {
	BaseModel
	UserID              uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio                 string          `gorm:"size:500" json:"bio"`
	Avatar              string          `gorm:"size:255" json:"avatar"`
	BirthDate           *time.Time      `json:"birth_date"`
	Location            string          `gorm:"size:100" json:"location"`
	Website             string          `gorm:"size:200" json:"website"`
	GithubUsername      string          `gorm:"size:100" json:"github_username"`
	LinkedinProfile     string          `gorm:"size:200" json:"linkedin_profile"`
	TwitterHandle       string          `gorm:"size:100" json:"twitter_handle"`
	ExperienceLevel     ExperienceLevel `gorm:"size:20;default:'beginner'" json:"experience_level"`
	LearningStyle       LearningStyle   `gorm:"size:20;default:'mixed'" json:"learning_style"`
	Interests           string          `gorm:"size:500" json:"interests"`
	Goals               string          `gorm:"type:text" json:"goals"`
	TimeZone            string          `gorm:"size:50;default:'UTC'" json:"time_zone"`
	WeeklyLearningHours uint            `gorm:"default:5" json:"weekly_learning_hours"`
	EmailNotifications  bool            `gorm:"default:true" json:"email_notifications"`
	PublicProfile       bool            `gorm:"default:true" json:"public_profile"`
	FirstLogin          bool            `gorm:"default:true" json:"first_login"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) InterestList() []string {
	var out []string
	for _, item := range strings.Split(p.Interests, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

type ProficiencyLevel string

const (
	ProficiencyNovice       ProficiencyLevel = "novice"
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

// swagger:model UserSkill
type UserSkill struct {
	BaseModel
	UserID            uint             `gorm:"uniqueIndex:idx_user_skill;not null" json:"user_id"`
	SkillName         string           `gorm:"size:100;uniqueIndex:idx_user_skill;not null" json:"skill_name"`
	ProficiencyLevel  ProficiencyLevel `gorm:"size:20;default:'novice'" json:"proficiency_level"`
	YearsOfExperience float64          `gorm:"type:decimal(4,1);default:0" json:"years_of_experience"`
	Verified          bool             `gorm:"default:false" json:"verified"`
	Notes             string           `gorm:"type:text" json:"notes"`
}

func (UserSkill) TableName() string {
	return "user_skills"
}
