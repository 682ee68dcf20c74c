package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("a user with this email already exists")
	ErrUsernameTaken      = errors.New("a user with this username already exists")
	ErrPasswordMismatch   = errors.New("passwords don't match")
	ErrWrongPassword      = errors.New("old password is incorrect")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrPathNotFound       = errors.New("learning path not found")
	ErrProgressNotFound   = errors.New("progress record not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrDuplicateReview    = errors.New("you have already reviewed this course")
	ErrDuplicateSkill     = errors.New("you have already added this skill")
	ErrCourseInPath       = errors.New("course is already in this learning path")
	ErrCourseNotInPath    = errors.New("course not found in this learning path")
	ErrAlreadyStarted     = errors.New("already started")
	ErrAlreadyCompleted   = errors.New("already completed")
	ErrProgressOutOfRange = errors.New("progress percentage must be between 0 and 100")
	ErrTimeSpentNegative  = errors.New("time spent must be non-negative")
	ErrRatingOutOfRange   = errors.New("rating must be between 1 and 5")
)
