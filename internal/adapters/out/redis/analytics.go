// Package redis records delivery outcomes as hourly counters:
//
//	dropoff:t:<tower>:<outcome>:<YYYYMMDDHH>
//
// Counters expire after the configured retention.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	DefaultRetention = 7 * 24 * time.Hour

	keyPrefix    = "dropoff"
	bucketLayout = "2006010215"
)

// AnalyticsSink implements ports.DeliveryAnalytics.
type AnalyticsSink struct {
	client    goredis.UniversalClient
	retention time.Duration
}

func NewAnalyticsSink(client goredis.UniversalClient, retention time.Duration) *AnalyticsSink {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &AnalyticsSink{client: client, retention: retention}
}

func (s *AnalyticsSink) Record(ctx context.Context, tower, outcome string, at time.Time) error {
	key := BucketKey(tower, outcome, at)

	pipe := s.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.retention)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline: %w", err)
	}
	return nil
}

// Count reads one hourly counter; a missing key counts as zero.
func (s *AnalyticsSink) Count(ctx context.Context, tower, outcome string, at time.Time) (int64, error) {
	n, err := s.client.Get(ctx, BucketKey(tower, outcome, at)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return n, err
}

func BucketKey(tower, outcome string, at time.Time) string {
	return fmt.Sprintf("%s:t:%s:%s:%s", keyPrefix, tower, outcome, at.UTC().Format(bucketLayout))
}
