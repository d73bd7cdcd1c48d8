// Package feed publishes household room changes to a Redis stream so other
// devices of the household can pick them up.
package feed

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"chore-rooms/internal/errors"
	"chore-rooms/internal/logging"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// EventType names a room change.
type EventType string

const (
	EventRoomCreated    EventType = "room_created"
	EventRoomUpdated    EventType = "room_updated"
	EventRoomDeleted    EventType = "room_deleted"
	EventRoomsReordered EventType = "rooms_reordered"
	EventTaskAdded      EventType = "task_added"
	EventTaskUpdated    EventType = "task_updated"
)

// Event is one entry of the change feed.
type Event struct {
	ID         string    `json:"-"`
	Type       EventType `json:"type"`
	RoomID     string    `json:"room_id,omitempty"`
	RoomName   string    `json:"room_name,omitempty"`
	TaskID     string    `json:"task_id,omitempty"`
	IsPersonal bool      `json:"is_personal"`
	RoomIDs    []string  `json:"room_ids,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher sends events to the household feed.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Reader reads back the most recent events.
type Reader interface {
	Recent(ctx context.Context, count int64) ([]Event, error)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Redis client timeouts used by NewRedisClient
const (
	DialTimeout  = 2 * time.Second
	ReadTimeout  = time.Second
	WriteTimeout = time.Second
)

// RedisFeed appends events to a Redis stream trimmed to about maxLen entries.
// Redis trims whole nodes, so the stream can briefly hold a few more.
type RedisFeed struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *zap.Logger
	now    func() time.Time
}

// NewRedisClient opens a client for addr with short timeouts.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  DialTimeout,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	})
}

// NewRedisFeed creates a feed on stream. A maxLen of zero keeps every entry.
func NewRedisFeed(client *redis.Client, stream string, maxLen int64, logger *zap.Logger) *RedisFeed {
	return &RedisFeed{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
}

// Ping checks the Redis connection
func (f *RedisFeed) Ping(ctx context.Context) error {
	return f.client.Ping(ctx).Err()
}

// Publish appends event to the stream
func (f *RedisFeed) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = f.now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeInvalidInput, fmt.Sprintf("failed to encode %s event", event.Type))
	}

	id, err := f.client.XAdd(ctx, &redis.XAddArgs{
		Stream: f.stream,
		MaxLen: f.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"type":      string(event.Type),
			"data":      string(data),
			"timestamp": strconv.FormatInt(event.At.Unix(), 10),
		},
	}).Result()
	if err != nil {
		f.logger.Warn("failed to publish room event",
			zap.String("stream", f.stream),
			zap.String("type", string(event.Type)),
			zap.Error(err))
		return redisError(err, fmt.Sprintf("failed to publish %s event", event.Type))
	}

	f.logger.Debug("published room event",
		zap.String("stream", f.stream),
		zap.String("id", id),
		zap.String("type", string(event.Type)),
		zap.String("room_id", event.RoomID))
	return nil
}

// Recent returns up to count events, newest first
func (f *RedisFeed) Recent(ctx context.Context, count int64) ([]Event, error) {
	messages, err := f.client.XRevRangeN(ctx, f.stream, "+", "-", count).Result()
	if err != nil {
		if err == redis.Nil {
			return []Event{}, nil
		}
		return nil, redisError(err, fmt.Sprintf("failed to read %s", f.stream))
	}

	events := make([]Event, 0, len(messages))
	for _, msg := range messages {
		raw, ok := msg.Values["data"].(string)
		if !ok {
			f.logger.Warn("skipping feed entry without data", zap.String("id", msg.ID))
			continue
		}
		var event Event
		if err := json.Unmarshal([]byte(raw), &event); err != nil {
			f.logger.Warn("skipping malformed feed entry", zap.String("id", msg.ID), zap.Error(err))
			continue
		}
		event.ID = msg.ID
		events = append(events, event)
	}
	return events, nil
}

// redisError wraps a client error, keeping timeouts apart from other failures
func redisError(err error, message string) error {
	errorType := errors.ErrorTypeDatabase
	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout()) {
		errorType = errors.ErrorTypeTimeout
	}
	return errors.WrapError(err, errorType, message)
}

// Close closes the Redis client
func (f *RedisFeed) Close() error {
	return f.client.Close()
}
