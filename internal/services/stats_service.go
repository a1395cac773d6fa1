package services

import (
	"context"
	"fmt"

	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/repositories"
)

// PopularDirectionsLimit 统计页展示的热门方向数量
const PopularDirectionsLimit = 5

// DirectionLabel 方向的展示文本
func DirectionLabel(fromCity, toCity string) string {
	return fromCity + " → " + toCity
}

// StatsService 定义了统计服务的接口
type StatsService interface {
	SystemStats(ctx context.Context) (*models.SystemStats, error)
}

type statsService struct {
	users  repositories.UserRepository
	trains repositories.TrainRepository
}

// NewStatsService 创建一个新的 statsService 实例
func NewStatsService(users repositories.UserRepository, trains repositories.TrainRepository) StatsService {
	return &statsService{users: users, trains: trains}
}

// SystemStats 用户总数和车次最多的前 5 个方向
func (s *statsService) SystemStats(ctx context.Context) (*models.SystemStats, error) {
	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	directions, err := s.trains.PopularDirections(ctx, PopularDirectionsLimit)
	if err != nil {
		return nil, fmt.Errorf("popular directions: %w", err)
	}
	for i := range directions {
		directions[i].Direction = DirectionLabel(directions[i].FromCity, directions[i].ToCity)
	}
	return &models.SystemStats{
		TotalUsers:        total,
		PopularDirections: directions,
	}, nil
}
