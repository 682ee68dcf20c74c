package database

import (
	"fmt"
	"learning_path_backend/internal/config"
	"learning_path_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedCategories(db)

	return db, nil
}

// Migrate runs schema migration for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.UserSkill{},
		&model.Category{},
		&model.Course{},
		&model.CourseReview{},
		&model.UserCourseProgress{},
		&model.LearningPath{},
		&model.LearningPathCourse{},
		&model.UserLearningProgress{},
	)
}

func seedCategories(db *gorm.DB) {
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Category{
		{Name: "Programming", Slug: "programming", Description: "Programming languages and software development"},
		{Name: "Data Science", Slug: "data-science", Description: "Data analysis, statistics, and machine learning"},
		{Name: "Web Development", Slug: "web-development", Description: "Frontend and backend web technologies"},
		{Name: "DevOps", Slug: "devops", Description: "Infrastructure, CI/CD, and cloud operations"},
		{Name: "Design", Slug: "design", Description: "UI/UX and product design"},
	}
	for _, c := range defaults {
		db.Create(&c)
	}
}
