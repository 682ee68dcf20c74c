package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

// CourseFilter captures the list-endpoint query parameters.
type CourseFilter struct {
	DifficultyLevel string
	CourseType      string
	Status          string
	CategoryID      uint
	Platform        string
	FreeOnly        bool
	Search          string
	OrderBy         string
}

var courseOrderColumns = map[string]string{
	"created_at":     "created_at DESC",
	"updated_at":     "updated_at DESC",
	"title":          "title ASC",
	"duration_hours": "duration_hours ASC",
	"price":          "price ASC",
	"rating":         "rating DESC",
}

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) applyFilter(query *gorm.DB, filter CourseFilter) *gorm.DB {
	if filter.DifficultyLevel != "" {
		query = query.Where("difficulty_level = ?", filter.DifficultyLevel)
	}
	if filter.CourseType != "" {
		query = query.Where("course_type = ?", filter.CourseType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.FreeOnly {
		query = query.Where("price = 0")
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where(
			"title LIKE ? OR description LIKE ? OR short_description LIKE ? OR tags LIKE ? OR instructor LIKE ?",
			term, term, term, term, term,
		)
	}

	order, ok := courseOrderColumns[filter.OrderBy]
	if !ok {
		order = "created_at DESC"
	}
	return query.Order(order)
}

// List returns the courses visible to the viewer, filtered and paginated.
func (r *CourseRepository) List(viewerID *uint, filter CourseFilter, page, limit int) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).Scopes(VisibleTo(viewerID))
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	offset := (page - 1) * limit
	err := query.Preload("Creator").Preload("Category").
		Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByCreator(creatorID uint, filter CourseFilter, page, limit int) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).Where("creator_id = ?", creatorID)
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	offset := (page - 1) * limit
	err := query.Preload("Category").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

// ListFeatured returns well-reviewed visible courses, best rated first.
func (r *CourseRepository) ListFeatured(viewerID *uint, minRating float64, minRatings uint, limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Scopes(VisibleTo(viewerID)).
		Where("rating >= ? AND total_ratings >= ?", minRating, minRatings).
		Order("rating DESC, total_ratings DESC").
		Limit(limit).
		Preload("Creator").Preload("Category").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Creator").Preload("Category").First(&course, id).Error
	return &course, err
}

// FindVisibleByID loads a course only if the viewer may read it.
func (r *CourseRepository) FindVisibleByID(id uint, viewerID *uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Scopes(VisibleTo(viewerID)).
		Preload("Creator").Preload("Category").
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

// FindExistingIDs reports which of the given course ids actually exist,
// preserving the requested order.
func (r *CourseRepository) FindExistingIDs(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	err := r.DB.Model(&model.Course{}).Where("id IN ?", ids).Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}

	existing := make(map[uint]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}

	ordered := make([]uint, 0, len(found))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if existing[id] && !seen[id] {
			ordered = append(ordered, id)
			seen[id] = true
		}
	}
	return ordered, nil
}

func (r *CourseRepository) CountPublished() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).
		Where("is_public = ? AND status = ?", true, model.StatusPublished).
		Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountPublishedFree() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).
		Where("is_public = ? AND status = ? AND price = 0", true, model.StatusPublished).
		Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountByCreator(creatorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("creator_id = ?", creatorID).Count(&count).Error
	return count, err
}
