package service

import (
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startPathForUser(t *testing.T, e *testEnv, svc *ProgressService, userID, pathID uint) *PathProgressView {
	t.Helper()
	progress, err := svc.StartPath(userID, pathID)
	require.NoError(t, err)
	return progress
}

func TestStartCourseTwiceRejected(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	course := createCourse(t, e, user.ID, "go-basics")

	_, err := svc.StartCourse(user.ID, course.ID)
	require.NoError(t, err)

	_, err = svc.StartCourse(user.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyStarted)
}

func TestStartCourseInvisibleIsNotFound(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	creator := createUser(t, e, "creator")
	other := createUser(t, e, "other")
	draft := createCourse(t, e, creator.ID, "secret", func(c *model.Course) {
		c.Status = model.StatusDraft
	})

	_, err := svc.StartCourse(other.ID, draft.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	// The creator can start their own draft.
	_, err = svc.StartCourse(creator.ID, draft.ID)
	assert.NoError(t, err)
}

func TestUpdateCourseProgressRejectsOutOfRange(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	course := createCourse(t, e, user.ID, "go-basics")

	progress, err := svc.StartCourse(user.ID, course.ID)
	require.NoError(t, err)

	_, err = svc.UpdateCourseProgress(progress.ID, user.ID, CourseProgressUpdate{ProgressPercentage: ptr(150)})
	assert.ErrorIs(t, err, util.ErrProgressOutOfRange)

	_, err = svc.UpdateCourseProgress(progress.ID, user.ID, CourseProgressUpdate{ProgressPercentage: ptr(-1)})
	assert.ErrorIs(t, err, util.ErrProgressOutOfRange)

	_, err = svc.UpdateCourseProgress(progress.ID, user.ID, CourseProgressUpdate{TimeSpentHours: ptr(-2.0)})
	assert.ErrorIs(t, err, util.ErrTimeSpentNegative)

	// Nothing was clamped or persisted.
	reloaded, err := svc.GetCourseProgress(progress.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.ProgressPercentage)
}

func TestUpdateCourseProgressFullPercentageCompletes(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	course := createCourse(t, e, user.ID, "go-basics")

	progress, err := svc.StartCourse(user.ID, course.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateCourseProgress(progress.ID, user.ID, CourseProgressUpdate{ProgressPercentage: ptr(100)})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted())
	require.NotNil(t, updated.CompletedAt)
}

func TestMarkCourseCompletedTwiceRejected(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	course := createCourse(t, e, user.ID, "go-basics")

	progress, err := svc.StartCourse(user.ID, course.ID)
	require.NoError(t, err)

	completed, err := svc.MarkCourseCompleted(progress.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, completed.ProgressPercentage)

	_, err = svc.MarkCourseCompleted(progress.ID, user.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyCompleted)
}

func TestCourseProgressOfOtherUserIsNotFound(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	alice := createUser(t, e, "alice")
	bob := createUser(t, e, "bob")
	course := createCourse(t, e, alice.ID, "go-basics")

	progress, err := svc.StartCourse(alice.ID, course.ID)
	require.NoError(t, err)

	_, err = svc.GetCourseProgress(progress.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrProgressNotFound)

	_, err = svc.UpdateCourseProgress(progress.ID, bob.ID, CourseProgressUpdate{Notes: ptr("hi")})
	assert.ErrorIs(t, err, util.ErrProgressNotFound)
}

func TestCalculateProgressTruncates(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	path := createPath(t, e, user.ID, "backend")

	var courses []*model.Course
	for _, title := range []string{"one", "two", "three"} {
		course := createCourse(t, e, user.ID, title)
		courses = append(courses, course)
		addPathCourse(t, e, path.ID, course.ID, len(courses), true)
	}

	pathProgress := startPathForUser(t, e, svc, user.ID, path.ID)
	assert.Equal(t, 0, pathProgress.ProgressPercentage)

	expected := []int{33, 66, 100}
	for i, course := range courses {
		cp, err := svc.StartCourse(user.ID, course.ID)
		require.NoError(t, err)
		_, err = svc.MarkCourseCompleted(cp.ID, user.ID)
		require.NoError(t, err)

		view, err := svc.GetPathProgress(pathProgress.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, expected[i], view.ProgressPercentage)
	}
}

func TestCalculateProgressIgnoresOptionalCourses(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	path := createPath(t, e, user.ID, "backend")

	required := createCourse(t, e, user.ID, "required")
	optional := createCourse(t, e, user.ID, "optional")
	addPathCourse(t, e, path.ID, required.ID, 1, true)
	addPathCourse(t, e, path.ID, optional.ID, 2, false)

	pathProgress := startPathForUser(t, e, svc, user.ID, path.ID)

	cp, err := svc.StartCourse(user.ID, optional.ID)
	require.NoError(t, err)
	_, err = svc.MarkCourseCompleted(cp.ID, user.ID)
	require.NoError(t, err)

	view, err := svc.GetPathProgress(pathProgress.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.ProgressPercentage)

	cp, err = svc.StartCourse(user.ID, required.ID)
	require.NoError(t, err)
	_, err = svc.MarkCourseCompleted(cp.ID, user.ID)
	require.NoError(t, err)

	view, err = svc.GetPathProgress(pathProgress.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, view.ProgressPercentage)
}

func TestCalculateProgressBinaryWithoutRequiredCourses(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	path := createPath(t, e, user.ID, "empty-path")

	progress := startPathForUser(t, e, svc, user.ID, path.ID)
	assert.Equal(t, 0, progress.ProgressPercentage)

	completed, err := svc.MarkPathCompleted(progress.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, completed.ProgressPercentage)
}

func TestStartPathTwiceRejected(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	path := createPath(t, e, user.ID, "backend")

	startPathForUser(t, e, svc, user.ID, path.ID)

	_, err := svc.StartPath(user.ID, path.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyStarted)
}

func TestMarkPathCompletedTwiceRejected(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	path := createPath(t, e, user.ID, "backend")

	progress := startPathForUser(t, e, svc, user.ID, path.ID)

	_, err := svc.MarkPathCompleted(progress.ID, user.ID)
	require.NoError(t, err)

	_, err = svc.MarkPathCompleted(progress.ID, user.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyCompleted)
}

func TestUpdatePathProgressCurrentCourseMustBelong(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	path := createPath(t, e, user.ID, "backend")
	inPath := createCourse(t, e, user.ID, "in-path")
	outside := createCourse(t, e, user.ID, "outside")
	addPathCourse(t, e, path.ID, inPath.ID, 1, true)

	progress := startPathForUser(t, e, svc, user.ID, path.ID)

	_, err := svc.UpdatePathProgress(progress.ID, user.ID, PathProgressUpdate{CurrentCourseID: ptr(outside.ID)})
	assert.ErrorIs(t, err, util.ErrCourseNotInPath)

	updated, err := svc.UpdatePathProgress(progress.ID, user.ID, PathProgressUpdate{CurrentCourseID: ptr(inPath.ID)})
	require.NoError(t, err)
	require.NotNil(t, updated.CurrentCourseID)
	assert.Equal(t, inPath.ID, *updated.CurrentCourseID)
}

func TestPathProgressNeverPersisted(t *testing.T) {
	e := newTestEnv(t)
	svc := e.progressService()
	user := createUser(t, e, "alice")
	path := createPath(t, e, user.ID, "backend")
	course := createCourse(t, e, user.ID, "only")
	addPathCourse(t, e, path.ID, course.ID, 1, true)

	progress := startPathForUser(t, e, svc, user.ID, path.ID)

	cp, err := svc.StartCourse(user.ID, course.ID)
	require.NoError(t, err)
	_, err = svc.MarkCourseCompleted(cp.ID, user.ID)
	require.NoError(t, err)

	view, err := svc.GetPathProgress(progress.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, view.ProgressPercentage)

	// Removing the completion changes the derived value on the next read.
	require.NoError(t, e.DB.Model(&model.UserCourseProgress{}).
		Where("id = ?", cp.ID).
		Update("completed_at", nil).Error)

	view, err = svc.GetPathProgress(progress.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.ProgressPercentage)
}
