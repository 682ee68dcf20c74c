package service

import (
	"context"
	"errors"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"gorm.io/gorm"
)

type LearningPathService struct {
	PathRepo   *repository.LearningPathRepository
	CourseRepo *repository.CourseRepository

	// Stats is optional; when set, path writes drop the cached public
	// totals so they are not stale for a full TTL.
	Stats *StatsService
}

func (s *LearningPathService) invalidateStats() {
	if s.Stats != nil {
		s.Stats.InvalidateStats(context.Background())
	}
}

func NewLearningPathService(pathRepo *repository.LearningPathRepository, courseRepo *repository.CourseRepository) *LearningPathService {
	return &LearningPathService{
		PathRepo:   pathRepo,
		CourseRepo: courseRepo,
	}
}

// PathView decorates a learning path with its derived fields.
type PathView struct {
	model.LearningPath
	TagList     []string `json:"tag_list"`
	CourseCount int      `json:"course_count"`
}

func NewPathView(path *model.LearningPath) PathView {
	return PathView{
		LearningPath: *path,
		TagList:      path.TagList(),
		CourseCount:  len(path.PathCourses),
	}
}

func pathViews(paths []model.LearningPath) []PathView {
	views := make([]PathView, 0, len(paths))
	for i := range paths {
		views = append(views, NewPathView(&paths[i]))
	}
	return views
}

func (s *LearningPathService) ListPaths(viewerID *uint, filter repository.PathFilter, page, limit int) ([]PathView, int64, error) {
	paths, total, err := s.PathRepo.List(viewerID, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return pathViews(paths), total, nil
}

func (s *LearningPathService) ListMyPaths(userID uint, filter repository.PathFilter, page, limit int) ([]PathView, int64, error) {
	paths, total, err := s.PathRepo.ListByCreator(userID, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return pathViews(paths), total, nil
}

func (s *LearningPathService) GetPath(id uint, viewerID *uint) (*PathView, error) {
	path, err := s.PathRepo.FindVisibleByID(id, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPathNotFound
		}
		return nil, err
	}
	view := NewPathView(path)
	return &view, nil
}

// PathInput carries the writable path fields plus the ordered course id list.
type PathInput struct {
	Title                  string `json:"title" binding:"required,max=200"`
	Description            string `json:"description" binding:"required"`
	DifficultyLevel        string `json:"difficulty_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedDurationHours uint   `json:"estimated_duration_hours" binding:"required,gte=1,lte=1000"`
	Status                 string `json:"status" binding:"omitempty,oneof=draft published archived"`
	Tags                   string `json:"tags" binding:"max=500"`
	Prerequisites          string `json:"prerequisites"`
	LearningObjectives     string `json:"learning_objectives" binding:"required"`
	IsPublic               *bool  `json:"is_public"`
	CourseIDs              []uint `json:"course_ids"`
}

// PathResult carries the saved path plus any submitted course ids that did
// not resolve to an existing course and were skipped.
type PathResult struct {
	PathView
	SkippedCourseIDs []uint `json:"skipped_course_ids,omitempty"`
}

func applyPathInput(path *model.LearningPath, input PathInput) {
	path.Title = input.Title
	path.Description = input.Description
	if input.DifficultyLevel != "" {
		path.DifficultyLevel = model.DifficultyLevel(input.DifficultyLevel)
	}
	path.EstimatedDurationHours = input.EstimatedDurationHours
	if input.Status != "" {
		path.Status = model.ContentStatus(input.Status)
	}
	path.Tags = input.Tags
	path.Prerequisites = input.Prerequisites
	path.LearningObjectives = input.LearningObjectives
	if input.IsPublic != nil {
		path.IsPublic = *input.IsPublic
	}
}

// resolveCourseIDs splits the submitted ids into ones that exist, order
// preserved, and ones to report back as skipped.
func (s *LearningPathService) resolveCourseIDs(ids []uint) (valid, skipped []uint, err error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}
	valid, err = s.CourseRepo.FindExistingIDs(ids)
	if err != nil {
		return nil, nil, err
	}

	existing := make(map[uint]bool, len(valid))
	for _, id := range valid {
		existing[id] = true
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !existing[id] && !seen[id] {
			skipped = append(skipped, id)
			seen[id] = true
		}
	}
	return valid, skipped, nil
}

func (s *LearningPathService) CreatePath(creatorID uint, input PathInput) (*PathResult, error) {
	valid, skipped, err := s.resolveCourseIDs(input.CourseIDs)
	if err != nil {
		return nil, err
	}

	path := &model.LearningPath{
		CreatorID: creatorID,
		Status:    model.StatusDraft,
		IsPublic:  true,
	}
	applyPathInput(path, input)

	if err := s.PathRepo.Create(path); err != nil {
		return nil, err
	}
	s.invalidateStats()
	if len(valid) > 0 {
		if err := s.PathRepo.ReplaceCourses(path.ID, valid); err != nil {
			return nil, err
		}
	}

	created, err := s.PathRepo.FindByID(path.ID)
	if err != nil {
		return nil, err
	}
	return &PathResult{PathView: NewPathView(created), SkippedCourseIDs: skipped}, nil
}

func (s *LearningPathService) getModifiable(id uint, viewerID *uint) (*model.LearningPath, error) {
	path, err := s.PathRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPathNotFound
		}
		return nil, err
	}
	if !CanView(viewerID, path.CreatorID, path.IsPublic, path.Status) {
		return nil, util.ErrPathNotFound
	}
	if !CanModify(viewerID, path.CreatorID) {
		return nil, util.ErrPermissionDenied
	}
	return path, nil
}

func (s *LearningPathService) UpdatePath(id uint, viewerID *uint, input PathInput) (*PathResult, error) {
	path, err := s.getModifiable(id, viewerID)
	if err != nil {
		return nil, err
	}

	applyPathInput(path, input)
	path.Creator = nil
	path.PathCourses = nil
	if err := s.PathRepo.Update(path); err != nil {
		return nil, err
	}
	// Status or visibility may have changed.
	s.invalidateStats()

	var skipped []uint
	if input.CourseIDs != nil {
		var valid []uint
		valid, skipped, err = s.resolveCourseIDs(input.CourseIDs)
		if err != nil {
			return nil, err
		}
		if err := s.PathRepo.ReplaceCourses(path.ID, valid); err != nil {
			return nil, err
		}
	}

	updated, err := s.PathRepo.FindByID(path.ID)
	if err != nil {
		return nil, err
	}
	return &PathResult{PathView: NewPathView(updated), SkippedCourseIDs: skipped}, nil
}

func (s *LearningPathService) DeletePath(id uint, viewerID *uint) error {
	if _, err := s.getModifiable(id, viewerID); err != nil {
		return err
	}
	if err := s.PathRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateStats()
	return nil
}

type PathCourseInput struct {
	CourseID   uint   `json:"course_id" binding:"required"`
	Order      *int   `json:"order"`
	IsRequired *bool  `json:"is_required"`
	Notes      string `json:"notes"`
}

// AddCourse appends a course to the path. The default position is after the
// current last entry.
func (s *LearningPathService) AddCourse(pathID uint, viewerID *uint, input PathCourseInput) (*model.LearningPathCourse, error) {
	path, err := s.getModifiable(pathID, viewerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.CourseRepo.FindByID(input.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if _, err := s.PathRepo.FindPathCourse(path.ID, input.CourseID); err == nil {
		return nil, util.ErrCourseInPath
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order := 1
	if input.Order != nil {
		order = *input.Order
	} else {
		count, err := s.PathRepo.CountCourses(path.ID)
		if err != nil {
			return nil, err
		}
		order = int(count) + 1
	}

	required := true
	if input.IsRequired != nil {
		required = *input.IsRequired
	}

	entry := &model.LearningPathCourse{
		LearningPathID: path.ID,
		CourseID:       input.CourseID,
		Order:          order,
		IsRequired:     required,
		Notes:          input.Notes,
	}
	if err := s.PathRepo.AddCourse(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *LearningPathService) RemoveCourse(pathID uint, viewerID *uint, courseID uint) error {
	path, err := s.getModifiable(pathID, viewerID)
	if err != nil {
		return err
	}

	if _, err := s.PathRepo.FindPathCourse(path.ID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotInPath
		}
		return err
	}
	return s.PathRepo.RemoveCourse(path.ID, courseID)
}
