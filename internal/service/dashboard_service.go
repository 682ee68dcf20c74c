package service

import (
	"errors"
	"math"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"gorm.io/gorm"
)

const dashboardRecentLimit = 5

type DashboardService struct {
	UserRepo           *repository.UserRepository
	ProfileRepo        *repository.ProfileRepository
	SkillRepo          *repository.SkillRepository
	CourseRepo         *repository.CourseRepository
	PathRepo           *repository.LearningPathRepository
	CourseProgressRepo *repository.CourseProgressRepository
	PathProgressRepo   *repository.PathProgressRepository
	ProgressService    *ProgressService
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	skillRepo *repository.SkillRepository,
	courseRepo *repository.CourseRepository,
	pathRepo *repository.LearningPathRepository,
	courseProgressRepo *repository.CourseProgressRepository,
	pathProgressRepo *repository.PathProgressRepository,
	progressService *ProgressService,
) *DashboardService {
	return &DashboardService{
		UserRepo:           userRepo,
		ProfileRepo:        profileRepo,
		SkillRepo:          skillRepo,
		CourseRepo:         courseRepo,
		PathRepo:           pathRepo,
		CourseProgressRepo: courseProgressRepo,
		PathProgressRepo:   pathProgressRepo,
		ProgressService:    progressService,
	}
}

// DashboardStats summarizes the user's learning activity. The averages carry
// one decimal place.
type DashboardStats struct {
	LearningPathsCreated  int64   `json:"learning_paths_created"`
	CoursesAdded          int64   `json:"courses_added"`
	TotalPathsStarted     int64   `json:"total_paths_started"`
	PathsCompleted        int64   `json:"paths_completed"`
	TotalCoursesStarted   int64   `json:"total_courses_started"`
	CoursesCompleted      int64   `json:"courses_completed"`
	AveragePathProgress   float64 `json:"average_path_progress"`
	AverageCourseProgress float64 `json:"average_course_progress"`
	TotalSkills           int64   `json:"total_skills"`
}

type DashboardData struct {
	User          *model.User                `json:"user"`
	Profile       *model.UserProfile         `json:"profile"`
	Stats         DashboardStats             `json:"stats"`
	RecentPaths   []PathProgressView         `json:"recent_paths"`
	RecentCourses []model.UserCourseProgress `json:"recent_courses"`
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// GetDashboard assembles the user's activity summary. A missing profile is an
// error: the registration transaction guarantees one per user.
func (s *DashboardService) GetDashboard(userID uint) (*DashboardData, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	profile, err := s.ProfileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.buildStats(userID)
	if err != nil {
		return nil, err
	}

	recentPathRecords, err := s.PathProgressRepo.ListRecentByUser(userID, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	recentPaths := make([]PathProgressView, 0, len(recentPathRecords))
	for i := range recentPathRecords {
		view, err := s.ProgressService.buildPathView(&recentPathRecords[i])
		if err != nil {
			return nil, err
		}
		recentPaths = append(recentPaths, *view)
	}

	recentCourses, err := s.CourseProgressRepo.ListRecentByUser(userID, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		User:          user,
		Profile:       profile,
		Stats:         *stats,
		RecentPaths:   recentPaths,
		RecentCourses: recentCourses,
	}, nil
}

func (s *DashboardService) buildStats(userID uint) (*DashboardStats, error) {
	pathsCreated, err := s.PathRepo.CountByCreator(userID)
	if err != nil {
		return nil, err
	}
	coursesAdded, err := s.CourseRepo.CountByCreator(userID)
	if err != nil {
		return nil, err
	}

	pathsStarted, err := s.PathProgressRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	pathsCompleted, err := s.PathProgressRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, err
	}
	coursesStarted, err := s.CourseProgressRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	coursesCompleted, err := s.CourseProgressRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	skills, err := s.SkillRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	// Path progress is never stored, so the average is derived per record.
	var avgPath float64
	if pathsStarted > 0 {
		records, err := s.PathProgressRepo.ListAllByUser(userID)
		if err != nil {
			return nil, err
		}
		var sum int
		for i := range records {
			percentage, err := s.ProgressService.CalculateProgress(userID, &records[i])
			if err != nil {
				return nil, err
			}
			sum += percentage
		}
		avgPath = round1(float64(sum) / float64(len(records)))
	}

	var avgCourse float64
	if coursesStarted > 0 {
		sum, err := s.CourseProgressRepo.SumPercentageByUser(userID)
		if err != nil {
			return nil, err
		}
		avgCourse = round1(sum / float64(coursesStarted))
	}

	return &DashboardStats{
		LearningPathsCreated:  pathsCreated,
		CoursesAdded:          coursesAdded,
		TotalPathsStarted:     pathsStarted,
		PathsCompleted:        pathsCompleted,
		TotalCoursesStarted:   coursesStarted,
		CoursesCompleted:      coursesCompleted,
		AveragePathProgress:   avgPath,
		AverageCourseProgress: avgCourse,
		TotalSkills:           int64(len(skills)),
	}, nil
}
