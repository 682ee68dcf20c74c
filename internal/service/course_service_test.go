package service

import (
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courseInput(title string) CourseInput {
	return CourseInput{
		Title:         title,
		Description:   "about " + title,
		DurationHours: 10,
		URL:           "https://example.com/" + title,
	}
}

func TestCourseVisibility(t *testing.T) {
	e := newTestEnv(t)
	svc := e.courseService()
	owner := createUser(t, e, "owner")
	other := createUser(t, e, "other")

	public := createCourse(t, e, owner.ID, "public")
	draft := createCourse(t, e, owner.ID, "draft", func(c *model.Course) {
		c.Status = model.StatusDraft
	})
	private := createCourse(t, e, owner.ID, "private", func(c *model.Course) {
		c.IsPublic = false
	})

	courses, total, err := svc.ListCourses(nil, repository.CourseFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, public.ID, courses[0].ID)

	_, err = svc.GetCourse(draft.ID, nil)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
	_, err = svc.GetCourse(private.ID, nil)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	ownerView := &owner.ID
	_, total, err = svc.ListCourses(ownerView, repository.CourseFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	otherView := &other.ID
	_, err = svc.GetCourse(draft.ID, otherView)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCreateCourseDefaults(t *testing.T) {
	e := newTestEnv(t)
	svc := e.courseService()
	user := createUser(t, e, "alice")

	view, err := svc.CreateCourse(user.ID, courseInput("go-basics"))
	require.NoError(t, err)

	assert.Equal(t, model.StatusPublished, view.Status)
	assert.True(t, view.Course.IsPublic)
	assert.Equal(t, "English", view.Language)
	assert.True(t, view.IsFree)
	assert.Equal(t, "No ratings yet", view.AverageRatingDisplay)
	assert.Nil(t, view.Rating)
}

func TestCreateCourseSkipsUnknownCategory(t *testing.T) {
	e := newTestEnv(t)
	svc := e.courseService()
	user := createUser(t, e, "alice")

	input := courseInput("go-basics")
	input.CategoryID = ptr(uint(9999))
	view, err := svc.CreateCourse(user.ID, input)
	require.NoError(t, err)
	assert.Nil(t, view.CategoryID)

	categories := repository.NewCategoryRepository(e.DB)
	list, err := categories.List("")
	require.NoError(t, err)
	if len(list) > 0 {
		input = courseInput("rust-basics")
		input.CategoryID = &list[0].ID
		view, err = svc.CreateCourse(user.ID, input)
		require.NoError(t, err)
		require.NotNil(t, view.CategoryID)
		assert.Equal(t, list[0].ID, *view.CategoryID)
	}
}

func TestCreatePrivateCourseStaysPrivate(t *testing.T) {
	e := newTestEnv(t)
	svc := e.courseService()
	user := createUser(t, e, "alice")

	input := courseInput("secret")
	input.IsPublic = ptr(false)
	view, err := svc.CreateCourse(user.ID, input)
	require.NoError(t, err)
	assert.False(t, view.Course.IsPublic)

	// Reload from the database: the flag must survive the insert.
	var stored model.Course
	require.NoError(t, e.DB.First(&stored, view.ID).Error)
	assert.False(t, stored.IsPublic)

	_, err = svc.GetCourse(view.ID, nil)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestUpdateCourseOwnerOnly(t *testing.T) {
	e := newTestEnv(t)
	svc := e.courseService()
	owner := createUser(t, e, "owner")
	intruder := createUser(t, e, "intruder")
	course := createCourse(t, e, owner.ID, "go-basics")

	intruderView := &intruder.ID
	_, err := svc.UpdateCourse(course.ID, intruderView, courseInput("hijacked"))
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	err = svc.DeleteCourse(course.ID, intruderView)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	ownerView := &owner.ID
	updated, err := svc.UpdateCourse(course.ID, ownerView, courseInput("renamed"))
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)

	require.NoError(t, svc.DeleteCourse(course.ID, ownerView))
	_, err = svc.GetCourse(course.ID, ownerView)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestUpdateCannotTouchRatingAggregate(t *testing.T) {
	e := newTestEnv(t)
	svc := e.courseService()
	reviews := e.reviewService()
	owner := createUser(t, e, "owner")
	reviewer := createUser(t, e, "reviewer")
	course := createCourse(t, e, owner.ID, "go-basics")

	_, err := reviews.CreateReview(reviewer.ID, course.ID, 4, "")
	require.NoError(t, err)

	ownerView := &owner.ID
	updated, err := svc.UpdateCourse(course.ID, ownerView, courseInput("renamed"))
	require.NoError(t, err)

	// The aggregate survives a course update untouched.
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4.0, *updated.Rating)
	assert.Equal(t, uint(1), updated.TotalRatings)
}

func TestGetCourseDetailIncludesViewerState(t *testing.T) {
	e := newTestEnv(t)
	svc := e.courseService()
	reviews := e.reviewService()
	progress := e.progressService()
	owner := createUser(t, e, "owner")
	viewer := createUser(t, e, "viewer")
	course := createCourse(t, e, owner.ID, "go-basics")

	_, err := reviews.CreateReview(viewer.ID, course.ID, 5, "great")
	require.NoError(t, err)
	_, err = progress.StartCourse(viewer.ID, course.ID)
	require.NoError(t, err)

	viewerID := &viewer.ID
	detail, err := svc.GetCourse(course.ID, viewerID)
	require.NoError(t, err)
	require.NotNil(t, detail.UserReview)
	assert.Equal(t, 5, detail.UserReview.Rating)
	require.NotNil(t, detail.UserProgress)
	assert.Len(t, detail.Reviews, 1)

	// Anonymous detail carries no viewer state.
	detail, err = svc.GetCourse(course.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, detail.UserReview)
	assert.Nil(t, detail.UserProgress)
}

func TestListFreeCourses(t *testing.T) {
	e := newTestEnv(t)
	svc := e.courseService()
	user := createUser(t, e, "alice")

	createCourse(t, e, user.ID, "free-course")
	createCourse(t, e, user.ID, "paid-course", func(c *model.Course) {
		c.Price = 49.99
	})

	courses, total, err := svc.ListFree(nil, repository.CourseFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "free-course", courses[0].Title)
	assert.True(t, courses[0].IsFree)
}

func TestListFeaturedThreshold(t *testing.T) {
	e := newTestEnv(t)
	svc := e.courseService()
	user := createUser(t, e, "alice")

	strong := createCourse(t, e, user.ID, "strong")
	weak := createCourse(t, e, user.ID, "weak")
	obscure := createCourse(t, e, user.ID, "obscure")

	set := func(id uint, rating float64, count uint) {
		require.NoError(t, e.DB.Model(&model.Course{}).Where("id = ?", id).
			Updates(map[string]interface{}{"rating": rating, "total_ratings": count}).Error)
	}
	set(strong.ID, 4.5, 25)
	set(weak.ID, 3.0, 50)
	set(obscure.ID, 5.0, 2)

	featured, err := svc.ListFeatured(nil)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, strong.ID, featured[0].ID)
}
