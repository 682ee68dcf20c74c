package service

import (
	"fmt"
	"testing"

	"learning_path_backend/internal/model"
	"learning_path_backend/internal/repository"
	"learning_path_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq int

// newTestDB opens a fresh named in-memory database per test so tests cannot
// see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSeq++

	dsn := fmt.Sprintf("file:test_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type testEnv struct {
	DB       *gorm.DB
	Users    *repository.UserRepository
	Profiles *repository.ProfileRepository
	Skills   *repository.SkillRepository
	Courses  *repository.CourseRepository
	Reviews  *repository.ReviewRepository
	Paths    *repository.LearningPathRepository
	CourseP  *repository.CourseProgressRepository
	PathP    *repository.PathProgressRepository
}

func newTestEnv(t *testing.T) *testEnv {
	db := newTestDB(t)
	return &testEnv{
		DB:       db,
		Users:    repository.NewUserRepository(db),
		Profiles: repository.NewProfileRepository(db),
		Skills:   repository.NewSkillRepository(db),
		Courses:  repository.NewCourseRepository(db),
		Reviews:  repository.NewReviewRepository(db),
		Paths:    repository.NewLearningPathRepository(db),
		CourseP:  repository.NewCourseProgressRepository(db),
		PathP:    repository.NewPathProgressRepository(db),
	}
}

func (e *testEnv) courseService() *CourseService {
	categories := repository.NewCategoryRepository(e.DB)
	return NewCourseService(e.Courses, categories, e.Reviews, e.CourseP)
}

func (e *testEnv) reviewService() *ReviewService {
	return NewReviewService(e.Reviews, e.Courses)
}

func (e *testEnv) progressService() *ProgressService {
	return NewProgressService(e.CourseP, e.PathP, e.Courses, e.Paths)
}

func (e *testEnv) pathService() *LearningPathService {
	return NewLearningPathService(e.Paths, e.Courses)
}

var userSeq int

func createUser(t *testing.T, e *testEnv, username string) *model.User {
	t.Helper()
	userSeq++

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    fmt.Sprintf("%s%d@example.com", username, userSeq),
		Password: string(hashed),
	}
	require.NoError(t, e.Users.CreateWithProfile(user))
	return user
}

func createCourse(t *testing.T, e *testEnv, creatorID uint, title string, mutate ...func(*model.Course)) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:         title,
		Description:   "A course about " + title,
		CreatorID:     creatorID,
		DurationHours: 10,
		URL:           "https://example.com/" + title,
		Status:        model.StatusPublished,
		IsPublic:      true,
		Language:      "English",
	}
	for _, m := range mutate {
		m(course)
	}
	require.NoError(t, e.Courses.Create(course))
	return course
}

func createPath(t *testing.T, e *testEnv, creatorID uint, title string, mutate ...func(*model.LearningPath)) *model.LearningPath {
	t.Helper()

	path := &model.LearningPath{
		Title:                  title,
		Description:            "A path about " + title,
		CreatorID:              creatorID,
		EstimatedDurationHours: 40,
		Status:                 model.StatusPublished,
		LearningObjectives:     "Learn " + title,
		IsPublic:               true,
	}
	for _, m := range mutate {
		m(path)
	}
	require.NoError(t, e.Paths.Create(path))
	return path
}

func addPathCourse(t *testing.T, e *testEnv, pathID, courseID uint, order int, required bool) {
	t.Helper()
	require.NoError(t, e.Paths.AddCourse(&model.LearningPathCourse{
		LearningPathID: pathID,
		CourseID:       courseID,
		Order:          order,
		IsRequired:     required,
	}))
}

func ptr[T any](v T) *T {
	return &v
}
