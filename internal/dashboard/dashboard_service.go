package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	summaryCacheKey = "dashboard:summary"
	summaryCacheTTL = 30 * time.Second
	activityLimit   = 10
)

type Service interface {
	Summary(ctx context.Context) (SummaryResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: l}
}

func (s *service) Summary(ctx context.Context) (SummaryResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, summaryCacheKey).Result(); err == nil {
			var resp SummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// The landing page fires this on every load; singleflight keeps a
	// cold cache from turning into a query storm.
	v, err, _ := s.sf.Do(summaryCacheKey, func() (interface{}, error) {
		resp, err := s.buildSummary(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, summaryCacheKey, jsonData, summaryCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return SummaryResponse{}, err
	}

	return v.(SummaryResponse), nil
}

func (s *service) buildSummary(ctx context.Context) (SummaryResponse, error) {
	s.logger.Debug("build dashboard summary")

	employees, err := s.repo.EmployeeCount(ctx)
	if err != nil {
		s.logger.Error("dashboard employee count failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	pending, err := s.repo.PendingLeaveCount(ctx)
	if err != nil {
		s.logger.Error("dashboard pending leave count failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	absent, err := s.repo.AbsentCountOn(ctx, s.now())
	if err != nil {
		s.logger.Error("dashboard absent count failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	rows, err := s.repo.RecentActivity(ctx, activityLimit)
	if err != nil {
		s.logger.Error("dashboard recent activity failed", zap.Error(err))
		return SummaryResponse{}, err
	}

	activity := make([]ActivityEntry, len(rows))
	for i, row := range rows {
		activity[i] = ActivityEntry{
			Kind:   row.Kind,
			Name:   row.Name,
			Date:   row.Date.Format("2006-01-02"),
			Status: row.Status,
		}
	}

	return SummaryResponse{
		EmployeeCount:     employees,
		PendingLeaveCount: pending,
		AbsentTodayCount:  absent,
		RecentActivity:    activity,
	}, nil
}
