package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"crystal-petrol-bot/internal/domain/model"
	"crystal-petrol-bot/internal/domain/ports/repository"
)

var _ repository.SessionStore = (*SessionRepo)(nil)

// SessionRepo keeps per-user conversation sessions in Redis, letting
// in-flight registrations survive a bot restart. The TTL bounds how long a
// user may sit in the middle of a flow.
type SessionRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewSessionRepo(client RedisClient, ttl time.Duration) *SessionRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &SessionRepo{client: client, ttl: ttl}
}

func (s *SessionRepo) sessionKey(tgID int64) string {
	return fmt.Sprintf("conv_session:%d", tgID)
}

func (s *SessionRepo) Get(ctx context.Context, tgID int64) (*model.Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(tgID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionRepo) Set(ctx context.Context, tgID int64, sess *model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.sessionKey(tgID), data, s.ttl)
}

func (s *SessionRepo) Clear(ctx context.Context, tgID int64) error {
	return s.client.Del(ctx, s.sessionKey(tgID))
}
