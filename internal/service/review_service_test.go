package service

import (
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewers(t *testing.T, e *testEnv, n int) []*model.User {
	t.Helper()
	users := make([]*model.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, createUser(t, e, "reviewer"+string(rune('a'+i))))
	}
	return users
}

func TestCreateReviewUpdatesCourseAggregate(t *testing.T) {
	e := newTestEnv(t)
	svc := e.reviewService()
	creator := createUser(t, e, "creator")
	course := createCourse(t, e, creator.ID, "go-basics")

	users := reviewers(t, e, 3)
	for i, rating := range []int{3, 4, 5} {
		_, err := svc.CreateReview(users[i].ID, course.ID, rating, "fine")
		require.NoError(t, err)
	}

	reloaded, err := e.Courses.FindByID(course.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Rating)
	assert.Equal(t, 4.0, *reloaded.Rating)
	assert.Equal(t, uint(3), reloaded.TotalRatings)
}

func TestDeleteReviewRecomputesAggregate(t *testing.T) {
	e := newTestEnv(t)
	svc := e.reviewService()
	creator := createUser(t, e, "creator")
	course := createCourse(t, e, creator.ID, "go-basics")

	users := reviewers(t, e, 3)
	var last *model.CourseReview
	for i, rating := range []int{3, 4, 5} {
		review, err := svc.CreateReview(users[i].ID, course.ID, rating, "")
		require.NoError(t, err)
		last = review
	}

	require.NoError(t, svc.DeleteReview(last.ID, last.UserID))

	reloaded, err := e.Courses.FindByID(course.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Rating)
	assert.Equal(t, 3.5, *reloaded.Rating)
	assert.Equal(t, uint(2), reloaded.TotalRatings)
}

func TestDeletingLastReviewClearsRating(t *testing.T) {
	e := newTestEnv(t)
	svc := e.reviewService()
	creator := createUser(t, e, "creator")
	reviewer := createUser(t, e, "reviewer")
	course := createCourse(t, e, creator.ID, "go-basics")

	review, err := svc.CreateReview(reviewer.ID, course.ID, 5, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(review.ID, reviewer.ID))

	reloaded, err := e.Courses.FindByID(course.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Rating)
	assert.Equal(t, uint(0), reloaded.TotalRatings)
	assert.Equal(t, "No ratings yet", reloaded.AverageRatingDisplay())
}

func TestUpdateReviewRecomputesAggregate(t *testing.T) {
	e := newTestEnv(t)
	svc := e.reviewService()
	creator := createUser(t, e, "creator")
	reviewer := createUser(t, e, "reviewer")
	course := createCourse(t, e, creator.ID, "go-basics")

	review, err := svc.CreateReview(reviewer.ID, course.ID, 2, "meh")
	require.NoError(t, err)

	updated, err := svc.UpdateReview(review.ID, reviewer.ID, ReviewUpdate{Rating: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)

	reloaded, err := e.Courses.FindByID(course.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Rating)
	assert.Equal(t, 5.0, *reloaded.Rating)
}

func TestDuplicateReviewRejected(t *testing.T) {
	e := newTestEnv(t)
	svc := e.reviewService()
	creator := createUser(t, e, "creator")
	reviewer := createUser(t, e, "reviewer")
	course := createCourse(t, e, creator.ID, "go-basics")

	_, err := svc.CreateReview(reviewer.ID, course.ID, 4, "")
	require.NoError(t, err)

	_, err = svc.CreateReview(reviewer.ID, course.ID, 5, "")
	assert.ErrorIs(t, err, util.ErrDuplicateReview)
}

func TestReviewAfterDeleteAllowed(t *testing.T) {
	e := newTestEnv(t)
	svc := e.reviewService()
	creator := createUser(t, e, "creator")
	reviewer := createUser(t, e, "reviewer")
	course := createCourse(t, e, creator.ID, "go-basics")

	review, err := svc.CreateReview(reviewer.ID, course.ID, 4, "")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteReview(review.ID, reviewer.ID))

	_, err = svc.CreateReview(reviewer.ID, course.ID, 5, "second take")
	assert.NoError(t, err)
}

func TestReviewRatingRange(t *testing.T) {
	e := newTestEnv(t)
	svc := e.reviewService()
	creator := createUser(t, e, "creator")
	reviewer := createUser(t, e, "reviewer")
	course := createCourse(t, e, creator.ID, "go-basics")

	_, err := svc.CreateReview(reviewer.ID, course.ID, 0, "")
	assert.ErrorIs(t, err, util.ErrRatingOutOfRange)

	_, err = svc.CreateReview(reviewer.ID, course.ID, 6, "")
	assert.ErrorIs(t, err, util.ErrRatingOutOfRange)
}

func TestReviewInvisibleCourseIsNotFound(t *testing.T) {
	e := newTestEnv(t)
	svc := e.reviewService()
	creator := createUser(t, e, "creator")
	reviewer := createUser(t, e, "reviewer")
	hidden := createCourse(t, e, creator.ID, "hidden", func(c *model.Course) {
		c.IsPublic = false
	})

	_, err := svc.CreateReview(reviewer.ID, hidden.ID, 4, "")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestUpdateForeignReviewIsNotFound(t *testing.T) {
	e := newTestEnv(t)
	svc := e.reviewService()
	creator := createUser(t, e, "creator")
	reviewer := createUser(t, e, "reviewer")
	intruder := createUser(t, e, "intruder")
	course := createCourse(t, e, creator.ID, "go-basics")

	review, err := svc.CreateReview(reviewer.ID, course.ID, 4, "")
	require.NoError(t, err)

	_, err = svc.UpdateReview(review.ID, intruder.ID, ReviewUpdate{Rating: ptr(1)})
	assert.ErrorIs(t, err, util.ErrReviewNotFound)

	err = svc.DeleteReview(review.ID, intruder.ID)
	assert.ErrorIs(t, err, util.ErrReviewNotFound)
}

func TestRatingRoundedToTwoDecimals(t *testing.T) {
	e := newTestEnv(t)
	svc := e.reviewService()
	creator := createUser(t, e, "creator")
	course := createCourse(t, e, creator.ID, "go-basics")

	users := reviewers(t, e, 3)
	for i, rating := range []int{5, 5, 4} {
		_, err := svc.CreateReview(users[i].ID, course.ID, rating, "")
		require.NoError(t, err)
	}

	reloaded, err := e.Courses.FindByID(course.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Rating)
	// 14/3 = 4.666..., rounded half-up at two decimals.
	assert.Equal(t, 4.67, *reloaded.Rating)
	assert.Equal(t, "4.7/5.0", reloaded.AverageRatingDisplay())
}
