package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardService(e *testEnv) *DashboardService {
	return NewDashboardService(e.Users, e.Profiles, e.Skills, e.Courses, e.Paths, e.CourseP, e.PathP, e.progressService())
}

func TestDashboardEmpty(t *testing.T) {
	e := newTestEnv(t)
	svc := dashboardService(e)
	user := createUser(t, e, "alice")

	data, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), data.Stats.LearningPathsCreated)
	assert.Equal(t, int64(0), data.Stats.CoursesAdded)
	assert.Equal(t, int64(0), data.Stats.TotalPathsStarted)
	assert.Equal(t, int64(0), data.Stats.TotalCoursesStarted)
	assert.Equal(t, 0.0, data.Stats.AveragePathProgress)
	assert.Equal(t, 0.0, data.Stats.AverageCourseProgress)
	assert.Empty(t, data.RecentPaths)
	assert.Empty(t, data.RecentCourses)
	require.NotNil(t, data.Profile)
	assert.Equal(t, user.ID, data.Profile.UserID)
}

func TestDashboardAveragesOneDecimal(t *testing.T) {
	e := newTestEnv(t)
	svc := dashboardService(e)
	progress := e.progressService()
	user := createUser(t, e, "alice")

	a := createCourse(t, e, user.ID, "a")
	b := createCourse(t, e, user.ID, "b")
	c := createCourse(t, e, user.ID, "c")

	for _, pair := range []struct {
		courseID uint
		pct      int
	}{{a.ID, 50}, {b.ID, 25}, {c.ID, 0}} {
		cp, err := progress.StartCourse(user.ID, pair.courseID)
		require.NoError(t, err)
		if pair.pct > 0 {
			_, err = progress.UpdateCourseProgress(cp.ID, user.ID, CourseProgressUpdate{ProgressPercentage: ptr(pair.pct)})
			require.NoError(t, err)
		}
	}

	data, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), data.Stats.TotalCoursesStarted)
	// (50+25+0)/3 = 25.0
	assert.Equal(t, 25.0, data.Stats.AverageCourseProgress)
}

func TestDashboardPathAverageDerived(t *testing.T) {
	e := newTestEnv(t)
	svc := dashboardService(e)
	progress := e.progressService()
	user := createUser(t, e, "alice")

	// Path one: 1 of 2 required courses done -> 50.
	p1 := createPath(t, e, user.ID, "p1")
	c1 := createCourse(t, e, user.ID, "c1")
	c2 := createCourse(t, e, user.ID, "c2")
	addPathCourse(t, e, p1.ID, c1.ID, 1, true)
	addPathCourse(t, e, p1.ID, c2.ID, 2, true)

	// Path two: nothing done -> 0.
	p2 := createPath(t, e, user.ID, "p2")
	c3 := createCourse(t, e, user.ID, "c3")
	addPathCourse(t, e, p2.ID, c3.ID, 1, true)

	startPathForUser(t, e, progress, user.ID, p1.ID)
	startPathForUser(t, e, progress, user.ID, p2.ID)

	cp, err := progress.StartCourse(user.ID, c1.ID)
	require.NoError(t, err)
	_, err = progress.MarkCourseCompleted(cp.ID, user.ID)
	require.NoError(t, err)

	data, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Stats.TotalPathsStarted)
	// (50+0)/2 = 25.0
	assert.Equal(t, 25.0, data.Stats.AveragePathProgress)
	assert.Equal(t, int64(1), data.Stats.CoursesCompleted)
	assert.Equal(t, int64(2), data.Stats.LearningPathsCreated)
	assert.Equal(t, int64(3), data.Stats.CoursesAdded)
}

func TestDashboardRecentLimit(t *testing.T) {
	e := newTestEnv(t)
	svc := dashboardService(e)
	progress := e.progressService()
	user := createUser(t, e, "alice")

	for i := 0; i < 7; i++ {
		course := createCourse(t, e, user.ID, string(rune('a'+i)))
		_, err := progress.StartCourse(user.ID, course.ID)
		require.NoError(t, err)
	}

	data, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), data.Stats.TotalCoursesStarted)
	assert.Len(t, data.RecentCourses, 5)
}
