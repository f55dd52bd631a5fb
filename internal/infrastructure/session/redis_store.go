package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
	"github.com/jhoicas/Onboarding-api/internal/domain/repository"
	"github.com/jhoicas/Onboarding-api/pkg/config"
)

var _ repository.SessionRepository = (*RedisStore)(nil)

const keyPrefix = "onboarding:session:"

// RedisStore sesiones compartidas entre instancias; el TTL lo aplica Redis.
type RedisStore struct {
	db *redis.Client
}

// NewRedisStore abre la conexión y verifica con PING.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	const op = "session.NewRedisStore"
	db := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisStore{db: db}, nil
}

// Save guarda la sesión con expiración.
func (s *RedisStore) Save(ctx context.Context, sess *entity.Session, ttl time.Duration) error {
	const op = "session.RedisStore.Save"
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.db.Set(ctx, keyPrefix+sess.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Get devuelve (nil, nil) si no existe o venció.
func (s *RedisStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	const op = "session.RedisStore.Get"
	raw, err := s.db.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return decode(raw)
}

// Delete elimina la sesión.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.db.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session.RedisStore.Delete: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (s *RedisStore) Close() error {
	return s.db.Close()
}
