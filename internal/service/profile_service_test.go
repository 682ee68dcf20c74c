package service

import (
	"testing"

	"learning_path_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileService(e *testEnv) *ProfileService {
	return NewProfileService(e.Profiles, e.Users, e.Skills, e.Courses, e.Paths)
}

func TestProfileViewDerivedFields(t *testing.T) {
	e := newTestEnv(t)
	svc := profileService(e)
	user := createUser(t, e, "alice")
	user.FirstName = "Alice"
	user.LastName = "Smith"
	require.NoError(t, e.Users.Update(user))

	createCourse(t, e, user.ID, "one")
	createCourse(t, e, user.ID, "two")
	createPath(t, e, user.ID, "backend")
	require.NoError(t, e.Skills.Create(&model.UserSkill{UserID: user.ID, SkillName: "Go"}))

	_, err := svc.UpdateProfile(user.ID, ProfileUpdate{Interests: ptr("go, sql , testing")})
	require.NoError(t, err)

	view, err := svc.GetProfileByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", view.FullName)
	assert.Equal(t, []string{"go", "sql", "testing"}, view.InterestList)
	assert.Equal(t, int64(2), view.TotalCoursesAdded)
	assert.Equal(t, int64(1), view.TotalLearningPaths)
	assert.Len(t, view.Skills, 1)
}

func TestFullNameFallsBackToUsername(t *testing.T) {
	e := newTestEnv(t)
	svc := profileService(e)
	user := createUser(t, e, "loner")

	view, err := svc.GetProfileByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "loner", view.FullName)
}

func TestListProfilesVisibility(t *testing.T) {
	e := newTestEnv(t)
	svc := profileService(e)
	open := createUser(t, e, "open")
	hidden := createUser(t, e, "hidden")
	staff := createUser(t, e, "admin")
	staff.IsStaff = true
	require.NoError(t, e.Users.Update(staff))

	_, err := svc.UpdateProfile(hidden.ID, ProfileUpdate{PublicProfile: ptr(false)})
	require.NoError(t, err)

	// A regular user sees public profiles plus their own.
	_, total, err := svc.ListProfiles(open.ID, false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// The hidden user still sees themselves.
	_, total, err = svc.ListProfiles(hidden.ID, false, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// Staff see everyone.
	_, total, err = svc.ListProfiles(staff.ID, true, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestUpdateProfilePartial(t *testing.T) {
	e := newTestEnv(t)
	svc := profileService(e)
	user := createUser(t, e, "alice")

	view, err := svc.UpdateProfile(user.ID, ProfileUpdate{
		Bio:             ptr("hello"),
		ExperienceLevel: ptr("advanced"),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", view.Bio)
	assert.Equal(t, model.ExperienceAdvanced, view.ExperienceLevel)

	// Untouched fields keep their defaults.
	assert.Equal(t, model.StyleMixed, view.LearningStyle)
	assert.Equal(t, uint(5), view.WeeklyLearningHours)

	view, err = svc.UpdateProfile(user.ID, ProfileUpdate{Location: ptr("Berlin")})
	require.NoError(t, err)
	assert.Equal(t, "hello", view.Bio)
	assert.Equal(t, "Berlin", view.Location)
}
