package cache

import (
	"context"
	"encoding/json"
	"time"

	"pulsecheck/internal/model"

	"github.com/redis/go-redis/v9"
)

const churnPredictionsKey = "predictions:churn"

// PredictionCache handles Redis caching for churn predictions. Scoring a
// full company fans out one sentiment call per open answer, so results are
// cached between submissions.
type PredictionCache interface {
	GetChurn(ctx context.Context) (*model.ChurnPredictions, error)
	SetChurn(ctx context.Context, predictions *model.ChurnPredictions) error
	InvalidateChurn(ctx context.Context) error
}

type predictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(client *redis.Client) PredictionCache {
	return &predictionCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *predictionCache) GetChurn(ctx context.Context) (*model.ChurnPredictions, error) {
	data, err := c.client.Get(ctx, churnPredictionsKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var predictions model.ChurnPredictions
	if err := json.Unmarshal([]byte(data), &predictions); err != nil {
		return nil, err
	}
	return &predictions, nil
}

func (c *predictionCache) SetChurn(ctx context.Context, predictions *model.ChurnPredictions) error {
	data, err := json.Marshal(predictions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, churnPredictionsKey, data, c.ttl).Err()
}

func (c *predictionCache) InvalidateChurn(ctx context.Context) error {
	return c.client.Del(ctx, churnPredictionsKey).Err()
}
