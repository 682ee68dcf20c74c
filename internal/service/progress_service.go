package service

import (
	"errors"
	"time"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"gorm.io/gorm"
)

type ProgressService struct {
	CourseProgressRepo *repository.CourseProgressRepository
	PathProgressRepo   *repository.PathProgressRepository
	CourseRepo         *repository.CourseRepository
	PathRepo           *repository.LearningPathRepository
}

func NewProgressService(
	courseProgressRepo *repository.CourseProgressRepository,
	pathProgressRepo *repository.PathProgressRepository,
	courseRepo *repository.CourseRepository,
	pathRepo *repository.LearningPathRepository,
) *ProgressService {
	return &ProgressService{
		CourseProgressRepo: courseProgressRepo,
		PathProgressRepo:   pathProgressRepo,
		CourseRepo:         courseRepo,
		PathRepo:           pathRepo,
	}
}

// --- course progress ---

func (s *ProgressService) ListCourseProgress(userID uint, page, limit int) ([]model.UserCourseProgress, int64, error) {
	return s.CourseProgressRepo.ListByUser(userID, page, limit)
}

func (s *ProgressService) getOwnedCourseProgress(id, userID uint) (*model.UserCourseProgress, error) {
	progress, err := s.CourseProgressRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	if progress.UserID != userID {
		return nil, util.ErrProgressNotFound
	}
	return progress, nil
}

func (s *ProgressService) GetCourseProgress(id, userID uint) (*model.UserCourseProgress, error) {
	return s.getOwnedCourseProgress(id, userID)
}

// StartCourse creates the user's progress record for a visible course.
// Starting the same course twice is rejected.
func (s *ProgressService) StartCourse(userID, courseID uint) (*model.UserCourseProgress, error) {
	viewer := &userID
	course, err := s.CourseRepo.FindVisibleByID(courseID, viewer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if _, err := s.CourseProgressRepo.FindByUserAndCourse(userID, course.ID); err == nil {
		return nil, util.ErrAlreadyStarted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress := &model.UserCourseProgress{
		UserID:   userID,
		CourseID: course.ID,
	}
	if err := s.CourseProgressRepo.Create(progress); err != nil {
		return nil, err
	}
	return s.CourseProgressRepo.FindByID(progress.ID)
}

type CourseProgressUpdate struct {
	ProgressPercentage *int     `json:"progress_percentage"`
	TimeSpentHours     *float64 `json:"time_spent_hours"`
	Notes              *string  `json:"notes"`
}

// UpdateCourseProgress applies partial updates. Out-of-range percentages are
// rejected, never clamped. Reaching 100 completes the course.
func (s *ProgressService) UpdateCourseProgress(id, userID uint, update CourseProgressUpdate) (*model.UserCourseProgress, error) {
	progress, err := s.getOwnedCourseProgress(id, userID)
	if err != nil {
		return nil, err
	}

	if update.ProgressPercentage != nil {
		if *update.ProgressPercentage < 0 || *update.ProgressPercentage > 100 {
			return nil, util.ErrProgressOutOfRange
		}
		progress.ProgressPercentage = *update.ProgressPercentage
		if progress.ProgressPercentage == 100 && progress.CompletedAt == nil {
			now := time.Now()
			progress.CompletedAt = &now
		}
	}
	if update.TimeSpentHours != nil {
		if *update.TimeSpentHours < 0 {
			return nil, util.ErrTimeSpentNegative
		}
		progress.TimeSpentHours = *update.TimeSpentHours
	}
	if update.Notes != nil {
		progress.Notes = *update.Notes
	}

	progress.Course = nil
	if err := s.CourseProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return s.CourseProgressRepo.FindByID(progress.ID)
}

// MarkCourseCompleted stamps the completion time and forces the percentage to
// 100. Completing twice is rejected.
func (s *ProgressService) MarkCourseCompleted(id, userID uint) (*model.UserCourseProgress, error) {
	progress, err := s.getOwnedCourseProgress(id, userID)
	if err != nil {
		return nil, err
	}
	if progress.CompletedAt != nil {
		return nil, util.ErrAlreadyCompleted
	}

	now := time.Now()
	progress.CompletedAt = &now
	progress.ProgressPercentage = 100
	progress.Course = nil
	if err := s.CourseProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return s.CourseProgressRepo.FindByID(progress.ID)
}

// --- path progress ---

// PathProgressView attaches the derived completion percentage; the value is
// never stored, only computed from the current course completions.
type PathProgressView struct {
	model.UserLearningProgress
	ProgressPercentage int `json:"progress_percentage"`
}

// CalculateProgress derives the user's percentage through a path from the
// path's required courses. Truncates toward zero; a path without required
// courses is binary on its own completion mark.
func (s *ProgressService) CalculateProgress(userID uint, progress *model.UserLearningProgress) (int, error) {
	requiredIDs, err := s.PathRepo.RequiredCourseIDs(progress.LearningPathID)
	if err != nil {
		return 0, err
	}

	if len(requiredIDs) == 0 {
		if progress.CompletedAt != nil {
			return 100, nil
		}
		return 0, nil
	}

	completed, err := s.CourseProgressRepo.CountCompletedIn(userID, requiredIDs)
	if err != nil {
		return 0, err
	}
	return int(completed * 100 / int64(len(requiredIDs))), nil
}

func (s *ProgressService) buildPathView(progress *model.UserLearningProgress) (*PathProgressView, error) {
	percentage, err := s.CalculateProgress(progress.UserID, progress)
	if err != nil {
		return nil, err
	}
	return &PathProgressView{
		UserLearningProgress: *progress,
		ProgressPercentage:   percentage,
	}, nil
}

func (s *ProgressService) ListPathProgress(userID uint, page, limit int) ([]PathProgressView, int64, error) {
	records, total, err := s.PathProgressRepo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]PathProgressView, 0, len(records))
	for i := range records {
		view, err := s.buildPathView(&records[i])
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, total, nil
}

func (s *ProgressService) getOwnedPathProgress(id, userID uint) (*model.UserLearningProgress, error) {
	progress, err := s.PathProgressRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	if progress.UserID != userID {
		return nil, util.ErrProgressNotFound
	}
	return progress, nil
}

func (s *ProgressService) GetPathProgress(id, userID uint) (*PathProgressView, error) {
	progress, err := s.getOwnedPathProgress(id, userID)
	if err != nil {
		return nil, err
	}
	return s.buildPathView(progress)
}

// StartPath enrolls the user on a visible learning path.
func (s *ProgressService) StartPath(userID, pathID uint) (*PathProgressView, error) {
	viewer := &userID
	path, err := s.PathRepo.FindVisibleByID(pathID, viewer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPathNotFound
		}
		return nil, err
	}

	if _, err := s.PathProgressRepo.FindByUserAndPath(userID, path.ID); err == nil {
		return nil, util.ErrAlreadyStarted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress := &model.UserLearningProgress{
		UserID:         userID,
		LearningPathID: path.ID,
	}
	if err := s.PathProgressRepo.Create(progress); err != nil {
		return nil, err
	}

	created, err := s.PathProgressRepo.FindByID(progress.ID)
	if err != nil {
		return nil, err
	}
	return s.buildPathView(created)
}

type PathProgressUpdate struct {
	CurrentCourseID *uint   `json:"current_course_id"`
	Notes           *string `json:"notes"`
}

// UpdatePathProgress moves the bookmark within the path. The current course
// must belong to the path.
func (s *ProgressService) UpdatePathProgress(id, userID uint, update PathProgressUpdate) (*PathProgressView, error) {
	progress, err := s.getOwnedPathProgress(id, userID)
	if err != nil {
		return nil, err
	}

	if update.CurrentCourseID != nil {
		if _, err := s.PathRepo.FindPathCourse(progress.LearningPathID, *update.CurrentCourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCourseNotInPath
			}
			return nil, err
		}
		progress.CurrentCourseID = update.CurrentCourseID
		progress.CurrentCourse = nil
	}
	if update.Notes != nil {
		progress.Notes = *update.Notes
	}

	progress.LearningPath = nil
	if err := s.PathProgressRepo.Update(progress); err != nil {
		return nil, err
	}

	updated, err := s.PathProgressRepo.FindByID(progress.ID)
	if err != nil {
		return nil, err
	}
	return s.buildPathView(updated)
}

// MarkPathCompleted stamps the path's completion time. Completing twice is
// rejected.
func (s *ProgressService) MarkPathCompleted(id, userID uint) (*PathProgressView, error) {
	progress, err := s.getOwnedPathProgress(id, userID)
	if err != nil {
		return nil, err
	}
	if progress.CompletedAt != nil {
		return nil, util.ErrAlreadyCompleted
	}

	now := time.Now()
	progress.CompletedAt = &now
	progress.LearningPath = nil
	progress.CurrentCourse = nil
	if err := s.PathProgressRepo.Update(progress); err != nil {
		return nil, err
	}

	updated, err := s.PathProgressRepo.FindByID(progress.ID)
	if err != nil {
		return nil, err
	}
	return s.buildPathView(updated)
}
