package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/calcgate/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "calcgate:"

// Journal implements ports.Journal using a capped Redis list.
type Journal struct {
	client *backend.Client
	prefix string
	size   int64
	ttl    time.Duration
}

type Option func(*Journal)

// WithTTL sets the expiration of the whole journal, refreshed on every append.
func WithTTL(ttl time.Duration) Option {
	return func(j *Journal) {
		j.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(j *Journal) {
		j.prefix = prefix
	}
}

// WithSize caps the number of records kept.
func WithSize(size int) Option {
	return func(j *Journal) {
		if size > 0 {
			j.size = int64(size)
		}
	}
}

// New creates a new Redis journal with options.
func New(address, password string, db int, opts ...Option) *Journal {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis journal from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Journal {
	j := &Journal{
		client: client,
		prefix: defaultPrefix,
		size:   100,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(j)
	}

	return j
}

func (j *Journal) key() string {
	return j.prefix + "journal"
}

// Append pushes the record to the head of the list and trims the tail.
func (j *Journal) Append(ctx context.Context, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := j.client.TxPipeline()
	pipe.LPush(ctx, j.key(), data)
	pipe.LTrim(ctx, j.key(), 0, j.size-1)
	if j.ttl > 0 {
		pipe.Expire(ctx, j.key(), j.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. A non-positive limit returns all.
func (j *Journal) Recent(ctx context.Context, limit int) ([]domain.Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	vals, err := j.client.LRange(ctx, j.key(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal from redis: %w", err)
	}

	out := make([]domain.Record, 0, len(vals))
	for _, v := range vals {
		var rec domain.Record
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Ping checks connectivity.
func (j *Journal) Ping(ctx context.Context) error {
	return j.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (j *Journal) Close() error {
	return j.client.Close()
}
