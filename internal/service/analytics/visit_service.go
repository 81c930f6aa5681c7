// Package analytics 提供访问统计服务
package analytics

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/cache"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/metrics"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/utils"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// 访客去重键保留时长，覆盖当日即可
const visitKeyTTL = 48 * time.Hour

// VisitService 访问统计服务，数据库为准、Redis 作去重快路径
type VisitService struct {
	visitRepo   *repository.VisitRepository
	redisClient *redis.Client
}

// NewVisitService 创建访问统计服务
func NewVisitService(visitRepo *repository.VisitRepository, redisClient *redis.Client) *VisitService {
	return &VisitService{
		visitRepo:   visitRepo,
		redisClient: redisClient,
	}
}

// VisitStats 访问统计
type VisitStats struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RecordVisit 记录一次访问，同一访客每日只计一次
func (s *VisitService) RecordVisit(ctx context.Context, visitorID string) (bool, error) {
	if visitorID == "" {
		return false, errors.ErrVisitorIDMissing
	}

	date := utils.DayStart(time.Now().UTC())

	// Redis 快路径：已见过的访客直接跳过数据库。
	// 只读不写，入库成功后才标记，避免数据库失败后访客被永久跳过
	key := cache.BuildKey(cache.KeyPrefixVisit, date.Format("2006-01-02"))
	if s.redisClient != nil {
		seen, err := s.redisClient.SIsMember(ctx, key, visitorID).Result()
		if err != nil {
			logger.Warn("访客去重缓存不可用，回退数据库", logger.Module("analytics"), logger.Err(err))
		} else if seen {
			return false, nil
		}
	}

	counted, err := s.visitRepo.Record(ctx, date, visitorID)
	if err != nil {
		return false, errors.ErrVisitRecordFailed.WithError(err)
	}

	if s.redisClient != nil {
		if err := s.redisClient.SAdd(ctx, key, visitorID).Err(); err == nil {
			s.redisClient.Expire(ctx, key, visitKeyTTL)
		}
	}

	if counted {
		metrics.GetMetrics().RecordVisit()
	}
	return counted, nil
}

// GetTodayCount 今日访问数，尚无记录时为 0
func (s *VisitService) GetTodayCount(ctx context.Context) (int, error) {
	date := utils.DayStart(time.Now().UTC())
	visit, err := s.visitRepo.GetByDate(ctx, date)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, errors.ErrDatabaseError.WithError(err)
	}
	return visit.Count, nil
}

// GetRangeStats 获取日期范围内的逐日访问统计
func (s *VisitService) GetRangeStats(ctx context.Context, start, end time.Time) ([]*VisitStats, error) {
	if end.Before(start) {
		return nil, errors.ErrDateRangeInvalid
	}

	visits, err := s.visitRepo.ListRange(ctx, start, end)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	stats := make([]*VisitStats, len(visits))
	for i, v := range visits {
		stats[i] = &VisitStats{
			Date:  v.VisitDate.Format("2006-01-02"),
			Count: v.Count,
		}
	}
	return stats, nil
}

// GetTotalCount 获取日期范围内的访问总数
func (s *VisitService) GetTotalCount(ctx context.Context, start, end time.Time) (int64, error) {
	if end.Before(start) {
		return 0, errors.ErrDateRangeInvalid
	}
	total, err := s.visitRepo.TotalCount(ctx, start, end)
	if err != nil {
		return 0, errors.ErrDatabaseError.WithError(err)
	}
	return total, nil
}
