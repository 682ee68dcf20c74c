package service

import (
	"errors"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ProfileService struct {
	ProfileRepo *repository.ProfileRepository
	UserRepo    *repository.UserRepository
	SkillRepo   *repository.SkillRepository
	CourseRepo  *repository.CourseRepository
	PathRepo    *repository.LearningPathRepository
}

func NewProfileService(
	profileRepo *repository.ProfileRepository,
	userRepo *repository.UserRepository,
	skillRepo *repository.SkillRepository,
	courseRepo *repository.CourseRepository,
	pathRepo *repository.LearningPathRepository,
) *ProfileService {
	return &ProfileService{
		ProfileRepo: profileRepo,
		UserRepo:    userRepo,
		SkillRepo:   skillRepo,
		CourseRepo:  courseRepo,
		PathRepo:    pathRepo,
	}
}

// ProfileView is the profile read model with its derived fields attached.
type ProfileView struct {
	model.UserProfile
	User               *model.User       `json:"user"`
	Skills             []model.UserSkill `json:"skills"`
	FullName           string            `json:"full_name"`
	InterestList       []string          `json:"interest_list"`
	TotalLearningPaths int64             `json:"total_learning_paths"`
	TotalCoursesAdded  int64             `json:"total_courses_added"`
}

func (s *ProfileService) buildView(profile *model.UserProfile) (*ProfileView, error) {
	user, err := s.UserRepo.FindByID(profile.UserID)
	if err != nil {
		return nil, err
	}

	skills, err := s.SkillRepo.FindByUser(profile.UserID)
	if err != nil {
		return nil, err
	}

	pathCount, err := s.PathRepo.CountByCreator(profile.UserID)
	if err != nil {
		return nil, err
	}

	courseCount, err := s.CourseRepo.CountByCreator(profile.UserID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		UserProfile:        *profile,
		User:               user,
		Skills:             skills,
		FullName:           user.FullName(),
		InterestList:       profile.InterestList(),
		TotalLearningPaths: pathCount,
		TotalCoursesAdded:  courseCount,
	}, nil
}

func (s *ProfileService) ListProfiles(viewerID uint, staff bool, page, limit int) ([]ProfileView, int64, error) {
	profiles, total, err := s.ProfileRepo.ListVisible(viewerID, staff, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ProfileView, 0, len(profiles))
	for i := range profiles {
		view, err := s.buildView(&profiles[i])
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, total, nil
}

func (s *ProfileService) GetProfileByUser(userID uint) (*ProfileView, error) {
	profile, err := s.ProfileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.buildView(profile)
}

// ProfileUpdate carries the writable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Bio                 *string    `json:"bio"`
	BirthDate           *time.Time `json:"birth_date"`
	Location            *string    `json:"location"`
	Website             *string    `json:"website"`
	GithubUsername      *string    `json:"github_username"`
	LinkedinProfile     *string    `json:"linkedin_profile"`
	TwitterHandle       *string    `json:"twitter_handle"`
	ExperienceLevel     *string    `json:"experience_level" binding:"omitempty,oneof=beginner intermediate advanced expert"`
	LearningStyle       *string    `json:"learning_style" binding:"omitempty,oneof=visual auditory kinesthetic reading mixed"`
	Interests           *string    `json:"interests"`
	Goals               *string    `json:"goals"`
	TimeZone            *string    `json:"time_zone"`
	WeeklyLearningHours *uint      `json:"weekly_learning_hours"`
	EmailNotifications  *bool      `json:"email_notifications"`
	PublicProfile       *bool      `json:"public_profile"`
}

func (s *ProfileService) UpdateProfile(userID uint, update ProfileUpdate) (*ProfileView, error) {
	profile, err := s.ProfileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.BirthDate != nil {
		profile.BirthDate = update.BirthDate
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}
	if update.Website != nil {
		profile.Website = *update.Website
	}
	if update.GithubUsername != nil {
		profile.GithubUsername = *update.GithubUsername
	}
	if update.LinkedinProfile != nil {
		profile.LinkedinProfile = *update.LinkedinProfile
	}
	if update.TwitterHandle != nil {
		profile.TwitterHandle = *update.TwitterHandle
	}
	if update.ExperienceLevel != nil {
		profile.ExperienceLevel = model.ExperienceLevel(*update.ExperienceLevel)
	}
	if update.LearningStyle != nil {
		profile.LearningStyle = model.LearningStyle(*update.LearningStyle)
	}
	if update.Interests != nil {
		profile.Interests = *update.Interests
	}
	if update.Goals != nil {
		profile.Goals = *update.Goals
	}
	if update.TimeZone != nil {
		profile.TimeZone = *update.TimeZone
	}
	if update.WeeklyLearningHours != nil {
		profile.WeeklyLearningHours = *update.WeeklyLearningHours
	}
	if update.EmailNotifications != nil {
		profile.EmailNotifications = *update.EmailNotifications
	}
	if update.PublicProfile != nil {
		profile.PublicProfile = *update.PublicProfile
	}

	if err := s.ProfileRepo.Update(profile); err != nil {
		return nil, err
	}
	return s.buildView(profile)
}

func (s *ProfileService) SetAvatar(userID uint, url string) error {
	profile, err := s.ProfileRepo.FindByUserID(userID)
	if err != nil {
		return err
	}
	profile.Avatar = url
	return s.ProfileRepo.Update(profile)
}
