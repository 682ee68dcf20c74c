package repository

import (
	"learning_path_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) FindByID(id uint) (*model.CourseReview, error) {
	var review model.CourseReview
	err := r.DB.Preload("User").Preload("Course").First(&review, id).Error
	return &review, err
}

func (r *ReviewRepository) FindByUserAndCourse(userID, courseID uint) (*model.CourseReview, error) {
	var review model.CourseReview
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&review).Error
	return &review, err
}

// ListVisible pages reviews the viewer may read: staff read everything,
// others read their own reviews plus reviews of public published courses.
func (r *ReviewRepository) ListVisible(viewerID uint, staff bool, courseID uint, page, limit int) ([]model.CourseReview, int64, error) {
	query := r.DB.Model(&model.CourseReview{})
	if !staff {
		query = query.
			Joins("JOIN courses ON courses.id = course_reviews.course_id").
			Where("course_reviews.user_id = ? OR (courses.is_public = ? AND courses.status = ?)",
				viewerID, true, model.StatusPublished)
	}
	if courseID != 0 {
		query = query.Where("course_reviews.course_id = ?", courseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.CourseReview
	offset := (page - 1) * limit
	err := query.Order("course_reviews.created_at DESC").
		Offset(offset).Limit(limit).
		Preload("User").
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepository) ListByCourse(courseID uint, page, limit int) ([]model.CourseReview, int64, error) {
	query := r.DB.Model(&model.CourseReview{}).Where("course_id = ?", courseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.CourseReview
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Preload("User").
		Find(&reviews).Error
	return reviews, total, err
}

// RecomputeCourseRating refreshes the aggregate columns on the course from
// the current review set. Must run inside the same transaction as the review
// write that triggered it.
func RecomputeCourseRating(tx *gorm.DB, courseID uint) error {
	var stats struct {
		Avg   *float64
		Count int64
	}
	err := tx.Model(&model.CourseReview{}).
		Where("course_id = ?", courseID).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Scan(&stats).Error
	if err != nil {
		return err
	}

	var rating *float64
	if stats.Avg != nil {
		rounded := float64(int64(*stats.Avg*100+0.5)) / 100
		rating = &rounded
	}

	return tx.Model(&model.Course{}).
		Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"rating":        rating,
			"total_ratings": stats.Count,
		}).Error
}
