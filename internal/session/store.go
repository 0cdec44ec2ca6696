package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no session exists for the given ID, whether it
// never existed, was signed out, or expired.
var ErrNotFound = errors.New("session not found")

// Data is the server-side session record. The client only ever holds the
// opaque session ID; everything here stays in the registry.
type Data struct {
	UserID   string
	Email    string
	Role     string
	DarkMode bool
}

// Store is the session registry. Sessions are created at sign-in, destroyed
// at sign-out and expire on their own after the configured TTL.
type Store interface {
	Create(ctx context.Context, id string, data Data) error
	Get(ctx context.Context, id string) (*Data, error)
	Delete(ctx context.Context, id string) error
	// SetDarkMode updates the theme preference stored on the session.
	SetDarkMode(ctx context.Context, id string, dark bool) error
}

// RedisStore keeps sessions as Redis hashes with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(url, password string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: rdb, ttl: ttl}, nil
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *RedisStore) Create(ctx context.Context, id string, data Data) error {
	key := sessionKey(id)

	fields := map[string]any{
		"user_id":   data.UserID,
		"email":     data.Email,
		"role":      data.Role,
		"dark_mode": strconv.FormatBool(data.DarkMode),
	}

	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Data, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	dark, _ := strconv.ParseBool(fields["dark_mode"])
	return &Data{
		UserID:   fields["user_id"],
		Email:    fields["email"],
		Role:     fields["role"],
		DarkMode: dark,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

func (s *RedisStore) SetDarkMode(ctx context.Context, id string, dark bool) error {
	key := sessionKey(id)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	return s.client.HSet(ctx, key, "dark_mode", strconv.FormatBool(dark)).Err()
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
