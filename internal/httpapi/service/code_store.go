package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// CodeStore keeps issued confirmation codes. Codes are short-lived and
// single-use: a successful Consume removes the entry.
type CodeStore interface {
	Issue(ctx context.Context, userID, code string) error
	Consume(ctx context.Context, userID, code string) (bool, error)
}

type redisCodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCodeStore connects to Redis and returns a CodeStore backed by it.
// Only bcrypt hashes of the codes are written, never the plaintext.
func NewRedisCodeStore(addr, password string, ttl time.Duration) (CodeStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisCodeStore{client: rdb, ttl: ttl}, nil
}

func codeKey(userID string) string {
	return fmt.Sprintf("confirmation_code:%s", userID)
}

// Issue stores the hash of a fresh code, replacing any previous one. Expiry
// rides on the Redis TTL.
func (s *redisCodeStore) Issue(ctx context.Context, userID, code string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, codeKey(userID), string(hash), s.ttl).Err(); err != nil {
		return fmt.Errorf("store confirmation code: %w", err)
	}
	return nil
}

// Consume compares the supplied code against the stored hash and deletes the
// entry on a match. An absent or expired entry counts as a mismatch.
func (s *redisCodeStore) Consume(ctx context.Context, userID, code string) (bool, error) {
	hash, err := s.client.Get(ctx, codeKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load confirmation code: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return false, nil
	}
	if err := s.client.Del(ctx, codeKey(userID)).Err(); err != nil {
		return false, fmt.Errorf("invalidate confirmation code: %w", err)
	}
	return true, nil
}
