package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pulsecheck/internal/model"

	"github.com/redis/go-redis/v9"
)

// AnalyticsCache handles Redis caching for dashboard analytics and AI
// insights
type AnalyticsCache interface {
	GetSummary(ctx context.Context) (*model.AnalyticsSummary, error)
	SetSummary(ctx context.Context, summary *model.AnalyticsSummary) error

	GetInsight(ctx context.Context, weekNumber, year int, locale string) (*model.CompanyInsight, error)
	SetInsight(ctx context.Context, insight *model.CompanyInsight, locale string) error

	GetActions(ctx context.Context, weekNumber, year int, locale string) ([]model.ActionRecommendation, error)
	SetActions(ctx context.Context, weekNumber, year int, locale string, actions []model.ActionRecommendation) error

	Invalidate(ctx context.Context) error
}

type analyticsCache struct {
	client     *redis.Client
	summaryTTL time.Duration
	insightTTL time.Duration
}

// NewAnalyticsCache creates a new analytics cache
func NewAnalyticsCache(client *redis.Client) AnalyticsCache {
	return &analyticsCache{
		client:     client,
		summaryTTL: 15 * time.Minute,
		insightTTL: 24 * time.Hour,
	}
}

// Key helpers
func summaryKey() string {
	return "analytics:summary"
}

func insightKey(weekNumber, year int, locale string) string {
	return fmt.Sprintf("insight:%d:%d:%s", year, weekNumber, locale)
}

func actionsKey(weekNumber, year int, locale string) string {
	return fmt.Sprintf("actions:%d:%d:%s", year, weekNumber, locale)
}

func (c *analyticsCache) GetSummary(ctx context.Context) (*model.AnalyticsSummary, error) {
	data, err := c.client.Get(ctx, summaryKey()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary model.AnalyticsSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *analyticsCache) SetSummary(ctx context.Context, summary *model.AnalyticsSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(), data, c.summaryTTL).Err()
}

func (c *analyticsCache) GetInsight(ctx context.Context, weekNumber, year int, locale string) (*model.CompanyInsight, error) {
	data, err := c.client.Get(ctx, insightKey(weekNumber, year, locale)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var insight model.CompanyInsight
	if err := json.Unmarshal([]byte(data), &insight); err != nil {
		return nil, err
	}
	return &insight, nil
}

func (c *analyticsCache) SetInsight(ctx context.Context, insight *model.CompanyInsight, locale string) error {
	data, err := json.Marshal(insight)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, insightKey(insight.WeekNumber, insight.Year, locale), data, c.insightTTL).Err()
}

func (c *analyticsCache) GetActions(ctx context.Context, weekNumber, year int, locale string) ([]model.ActionRecommendation, error) {
	data, err := c.client.Get(ctx, actionsKey(weekNumber, year, locale)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var actions []model.ActionRecommendation
	if err := json.Unmarshal([]byte(data), &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func (c *analyticsCache) SetActions(ctx context.Context, weekNumber, year int, locale string, actions []model.ActionRecommendation) error {
	data, err := json.Marshal(actions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, actionsKey(weekNumber, year, locale), data, c.insightTTL).Err()
}

// Invalidate drops the summary and all week-scoped insight entries. Called
// after new survey submissions so dashboards regenerate.
func (c *analyticsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, summaryKey()).Err(); err != nil {
		return err
	}
	for _, pattern := range []string{"insight:*", "actions:*"} {
		iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}
