package service

import (
	"context"
	"errors"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"gorm.io/gorm"
)

const (
	featuredMinRating       = 4.0
	featuredMinRatingsCount = 10
	featuredLimit           = 20
)

type CourseService struct {
	CourseRepo         *repository.CourseRepository
	CategoryRepo       *repository.CategoryRepository
	ReviewRepo         *repository.ReviewRepository
	CourseProgressRepo *repository.CourseProgressRepository

	// Stats is optional; when set, catalog writes drop the cached public
	// totals so they are not stale for a full TTL.
	Stats *StatsService
}

func (s *CourseService) invalidateStats() {
	if s.Stats != nil {
		s.Stats.InvalidateStats(context.Background())
	}
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	categoryRepo *repository.CategoryRepository,
	reviewRepo *repository.ReviewRepository,
	courseProgressRepo *repository.CourseProgressRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:         courseRepo,
		CategoryRepo:       categoryRepo,
		ReviewRepo:         reviewRepo,
		CourseProgressRepo: courseProgressRepo,
	}
}

// CourseView decorates a course with its derived presentation fields.
type CourseView struct {
	model.Course
	IsFree               bool     `json:"is_free"`
	TagList              []string `json:"tag_list"`
	AverageRatingDisplay string   `json:"average_rating_display"`
}

func NewCourseView(course *model.Course) CourseView {
	return CourseView{
		Course:               *course,
		IsFree:               course.IsFree(),
		TagList:              course.TagList(),
		AverageRatingDisplay: course.AverageRatingDisplay(),
	}
}

func courseViews(courses []model.Course) []CourseView {
	views := make([]CourseView, 0, len(courses))
	for i := range courses {
		views = append(views, NewCourseView(&courses[i]))
	}
	return views
}

func (s *CourseService) ListCourses(viewerID *uint, filter repository.CourseFilter, page, limit int) ([]CourseView, int64, error) {
	courses, total, err := s.CourseRepo.List(viewerID, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return courseViews(courses), total, nil
}

func (s *CourseService) ListMyCourses(userID uint, filter repository.CourseFilter, page, limit int) ([]CourseView, int64, error) {
	courses, total, err := s.CourseRepo.ListByCreator(userID, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return courseViews(courses), total, nil
}

func (s *CourseService) ListFeatured(viewerID *uint) ([]CourseView, error) {
	courses, err := s.CourseRepo.ListFeatured(viewerID, featuredMinRating, featuredMinRatingsCount, featuredLimit)
	if err != nil {
		return nil, err
	}
	return courseViews(courses), nil
}

func (s *CourseService) ListFree(viewerID *uint, filter repository.CourseFilter, page, limit int) ([]CourseView, int64, error) {
	filter.FreeOnly = true
	return s.ListCourses(viewerID, filter, page, limit)
}

// CourseDetail adds the viewer's own progress and review to the course view.
type CourseDetail struct {
	CourseView
	Reviews      []model.CourseReview      `json:"reviews"`
	UserProgress *model.UserCourseProgress `json:"user_progress"`
	UserReview   *model.CourseReview       `json:"user_review"`
}

// GetCourse returns the detail view, or not-found when the viewer may not
// read the course at all.
func (s *CourseService) GetCourse(id uint, viewerID *uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindVisibleByID(id, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	reviews, _, err := s.ReviewRepo.ListByCourse(course.ID, 1, 50)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{
		CourseView: NewCourseView(course),
		Reviews:    reviews,
	}

	if viewerID != nil {
		if progress, err := s.CourseProgressRepo.FindByUserAndCourse(*viewerID, course.ID); err == nil {
			detail.UserProgress = progress
		}
		if review, err := s.ReviewRepo.FindByUserAndCourse(*viewerID, course.ID); err == nil {
			detail.UserReview = review
		}
	}

	return detail, nil
}

// CourseInput carries the writable course fields.
type CourseInput struct {
	Title                string   `json:"title" binding:"required,max=200"`
	Description          string   `json:"description" binding:"required"`
	ShortDescription     string   `json:"short_description" binding:"max=300"`
	CategoryID           *uint    `json:"category_id"`
	DifficultyLevel      string   `json:"difficulty_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	CourseType           string   `json:"course_type" binding:"omitempty,oneof=video text interactive project book article tutorial workshop"`
	DurationHours        uint     `json:"duration_hours" binding:"required,gte=1,lte=500"`
	URL                  string   `json:"url" binding:"required,url"`
	Instructor           string   `json:"instructor" binding:"max=200"`
	Platform             string   `json:"platform" binding:"max=100"`
	Price                *float64 `json:"price" binding:"omitempty,gte=0"`
	Status               string   `json:"status" binding:"omitempty,oneof=draft published archived"`
	Tags                 string   `json:"tags" binding:"max=500"`
	Prerequisites        string   `json:"prerequisites"`
	LearningOutcomes     string   `json:"learning_outcomes"`
	Language             string   `json:"language" binding:"max=50"`
	CertificateAvailable *bool    `json:"certificate_available"`
	IsPublic             *bool    `json:"is_public"`
}

func (s *CourseService) applyInput(course *model.Course, input CourseInput) {
	course.Title = input.Title
	course.Description = input.Description
	course.ShortDescription = input.ShortDescription
	if input.DifficultyLevel != "" {
		course.DifficultyLevel = model.DifficultyLevel(input.DifficultyLevel)
	}
	if input.CourseType != "" {
		course.CourseType = model.CourseType(input.CourseType)
	}
	course.DurationHours = input.DurationHours
	course.URL = input.URL
	course.Instructor = input.Instructor
	course.Platform = input.Platform
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.Status != "" {
		course.Status = model.ContentStatus(input.Status)
	}
	course.Tags = input.Tags
	course.Prerequisites = input.Prerequisites
	course.LearningOutcomes = input.LearningOutcomes
	if input.Language != "" {
		course.Language = input.Language
	}
	if input.CertificateAvailable != nil {
		course.CertificateAvailable = *input.CertificateAvailable
	}
	if input.IsPublic != nil {
		course.IsPublic = *input.IsPublic
	}

	// Category assignment is best effort: an unknown id leaves the current
	// category untouched, an explicit null clears it.
	if input.CategoryID == nil {
		course.CategoryID = nil
		course.Category = nil
	} else if _, err := s.CategoryRepo.FindByID(*input.CategoryID); err == nil {
		course.CategoryID = input.CategoryID
		course.Category = nil
	}
}

func (s *CourseService) CreateCourse(creatorID uint, input CourseInput) (*CourseView, error) {
	course := &model.Course{
		CreatorID: creatorID,
		Status:    model.StatusPublished,
		IsPublic:  true,
		Language:  "English",
	}
	s.applyInput(course, input)

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	s.invalidateStats()

	created, err := s.CourseRepo.FindByID(course.ID)
	if err != nil {
		return nil, err
	}
	view := NewCourseView(created)
	return &view, nil
}

func (s *CourseService) UpdateCourse(id uint, viewerID *uint, input CourseInput) (*CourseView, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if !CanView(viewerID, course.CreatorID, course.IsPublic, course.Status) {
		return nil, util.ErrCourseNotFound
	}
	if !CanModify(viewerID, course.CreatorID) {
		return nil, util.ErrPermissionDenied
	}

	s.applyInput(course, input)
	course.Creator = nil
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	// Status or visibility may have changed.
	s.invalidateStats()

	updated, err := s.CourseRepo.FindByID(course.ID)
	if err != nil {
		return nil, err
	}
	view := NewCourseView(updated)
	return &view, nil
}

func (s *CourseService) DeleteCourse(id uint, viewerID *uint) error {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	if !CanView(viewerID, course.CreatorID, course.IsPublic, course.Status) {
		return util.ErrCourseNotFound
	}
	if !CanModify(viewerID, course.CreatorID) {
		return util.ErrPermissionDenied
	}

	if err := s.CourseRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateStats()
	return nil
}
