package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"station/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

const (
	// LocationChannel is the pub/sub channel carrying every published sample.
	LocationChannel = "orders.locations"
	// DefaultLocationTTL bounds how long the last position of an order is kept.
	DefaultLocationTTL = 10 * time.Minute
)

// RedisPublisher stores the last position of every order in the hash
// order:<id>:location and publishes each sample on LocationChannel.
type RedisPublisher struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPublisher(rdb *redis.Client, ttl time.Duration) *RedisPublisher {
	if ttl <= 0 {
		ttl = DefaultLocationTTL
	}
	return &RedisPublisher{rdb: rdb, ttl: ttl}
}

// LocationKey returns the hash key holding the last position of orderID.
func LocationKey(orderID string) string {
	return "order:" + orderID + ":location"
}

func (p *RedisPublisher) PublishLocation(ctx context.Context, sample ports.LocationSample) error {
	msg := NewLocationMessage(sample)
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	key := LocationKey(msg.OrderID)
	_, err = p.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"po_number": msg.PONumber,
			"truck_id":  msg.TruckID,
			"lng":       strconv.FormatFloat(msg.Lng, 'f', -1, 64),
			"lat":       strconv.FormatFloat(msg.Lat, 'f', -1, 64),
			"progress":  strconv.FormatFloat(msg.ProgressPercent, 'f', 2, 64),
			"arrived":   strconv.FormatBool(msg.Arrived),
			"at":        msg.At.Format(time.RFC3339),
		})
		pipe.Expire(ctx, key, p.ttl)
		pipe.Publish(ctx, LocationChannel, data)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish location of %s to redis: %w", msg.OrderID, err)
	}

	return nil
}
