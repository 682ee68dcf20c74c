package service

import (
	"errors"
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"gorm.io/gorm"
)

type ReviewService struct {
	ReviewRepo *repository.ReviewRepository
	CourseRepo *repository.CourseRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, courseRepo *repository.CourseRepository) *ReviewService {
	return &ReviewService{
		ReviewRepo: reviewRepo,
		CourseRepo: courseRepo,
	}
}

func (s *ReviewService) ListReviews(viewerID uint, staff bool, courseID uint, page, limit int) ([]model.CourseReview, int64, error) {
	return s.ReviewRepo.ListVisible(viewerID, staff, courseID, page, limit)
}

func (s *ReviewService) GetReview(id, viewerID uint, staff bool) (*model.CourseReview, error) {
	review, err := s.ReviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReviewNotFound
		}
		return nil, err
	}
	if staff || review.UserID == viewerID {
		return review, nil
	}
	if review.Course != nil && review.Course.IsPublic && review.Course.Status == model.StatusPublished {
		return review, nil
	}
	return nil, util.ErrReviewNotFound
}

// CreateReview stores one review per user and course, then refreshes the
// course rating aggregate in the same transaction.
func (s *ReviewService) CreateReview(userID, courseID uint, rating int, reviewText string) (*model.CourseReview, error) {
	if rating < 1 || rating > 5 {
		return nil, util.ErrRatingOutOfRange
	}

	viewer := &userID
	course, err := s.CourseRepo.FindVisibleByID(courseID, viewer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if _, err := s.ReviewRepo.FindByUserAndCourse(userID, course.ID); err == nil {
		return nil, util.ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &model.CourseReview{
		CourseID:   course.ID,
		UserID:     userID,
		Rating:     rating,
		ReviewText: reviewText,
	}

	err = s.ReviewRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return repository.RecomputeCourseRating(tx, course.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.ReviewRepo.FindByID(review.ID)
}

type ReviewUpdate struct {
	Rating     *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	ReviewText *string `json:"review_text"`
}

func (s *ReviewService) UpdateReview(id, userID uint, update ReviewUpdate) (*model.CourseReview, error) {
	review, err := s.ReviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, util.ErrReviewNotFound
	}

	if update.Rating != nil {
		if *update.Rating < 1 || *update.Rating > 5 {
			return nil, util.ErrRatingOutOfRange
		}
		review.Rating = *update.Rating
	}
	if update.ReviewText != nil {
		review.ReviewText = *update.ReviewText
	}
	review.User = nil
	review.Course = nil

	err = s.ReviewRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}
		return repository.RecomputeCourseRating(tx, review.CourseID)
	})
	if err != nil {
		return nil, err
	}

	return s.ReviewRepo.FindByID(review.ID)
}

func (s *ReviewService) DeleteReview(id, userID uint) error {
	review, err := s.ReviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID {
		return util.ErrReviewNotFound
	}

	// Hard delete so the user may review the course again later without
	// tripping the unique (course, user) index.
	return s.ReviewRepo.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&model.CourseReview{}, review.ID).Error; err != nil {
			return err
		}
		return repository.RecomputeCourseRating(tx, review.CourseID)
	})
}
