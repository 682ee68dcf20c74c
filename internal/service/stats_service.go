package service

import (
	"context"
	"encoding/json"
	"time"

	"learning_path_backend/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	statsCacheKey = "learning_path:public_stats"
	statsCacheTTL = 5 * time.Minute
)

// PublicStats is the anonymous landing-page summary. It only counts content
// any visitor can see.
type PublicStats struct {
	TotalCourses       int64 `json:"total_courses"`
	FreeCourses        int64 `json:"free_courses"`
	TotalLearningPaths int64 `json:"total_learning_paths"`
	TotalUsers         int64 `json:"total_users"`
}

type StatsService struct {
	CourseRepo *repository.CourseRepository
	PathRepo   *repository.LearningPathRepository
	UserRepo   *repository.UserRepository
	Redis      *redis.Client
	Logger     *zap.Logger
}

func NewStatsService(
	courseRepo *repository.CourseRepository,
	pathRepo *repository.LearningPathRepository,
	userRepo *repository.UserRepository,
	redisClient *redis.Client,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		CourseRepo: courseRepo,
		PathRepo:   pathRepo,
		UserRepo:   userRepo,
		Redis:      redisClient,
		Logger:     logger,
	}
}

// GetPublicStats serves the cached summary when redis holds a fresh copy and
// recomputes it otherwise. Cache failures degrade to a direct computation.
func (s *StatsService) GetPublicStats(ctx context.Context) (*PublicStats, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var stats PublicStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			s.Logger.Warn("stats cache read failed", zap.Error(err))
		}
	}

	stats, err := s.computeStats()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.Redis.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				s.Logger.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

// InvalidateStats drops the cached summary so the next read recomputes it.
func (s *StatsService) InvalidateStats(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, statsCacheKey).Err(); err != nil {
		s.Logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *StatsService) computeStats() (*PublicStats, error) {
	totalCourses, err := s.CourseRepo.CountPublished()
	if err != nil {
		return nil, err
	}
	freeCourses, err := s.CourseRepo.CountPublishedFree()
	if err != nil {
		return nil, err
	}
	totalPaths, err := s.PathRepo.CountPublished()
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}

	return &PublicStats{
		TotalCourses:       totalCourses,
		FreeCourses:        freeCourses,
		TotalLearningPaths: totalPaths,
		TotalUsers:         totalUsers,
	}, nil
}
