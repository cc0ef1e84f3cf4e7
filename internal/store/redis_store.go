package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

const redisKeyPrefix = "eurostudy:resumes:"

// RedisStore keeps one JSON-encoded array per owner under a single key.
type RedisStore struct {
	rdb      *redis.Client
	maxBytes int
}

func NewRedisStore(rdb *redis.Client, maxBytes int) *RedisStore {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &RedisStore{rdb: rdb, maxBytes: maxBytes}
}

func (s *RedisStore) key(ownerID string) string { return redisKeyPrefix + ownerID }

func (s *RedisStore) ListAll(ctx context.Context, ownerID string) ([]models.Resume, error) {
	const op = "store.RedisStore.ListAll"

	raw, err := s.rdb.Get(ctx, s.key(ownerID)).Result()
	if err == redis.Nil {
		return []models.Resume{}, nil
	}
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "resume storage unavailable", err)
	}

	var resumes []models.Resume
	if err := json.Unmarshal([]byte(raw), &resumes); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "corrupt resume collection", err)
	}
	return resumes, nil
}

func (s *RedisStore) PersistAll(ctx context.Context, ownerID string, resumes []models.Resume) error {
	const op = "store.RedisStore.PersistAll"

	if resumes == nil {
		resumes = []models.Resume{}
	}
	b, err := json.Marshal(resumes)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to encode resume collection", err)
	}
	if len(b) > s.maxBytes {
		return utils.E(utils.CodeUnavailable, op, "resume collection exceeds storage capacity", nil)
	}
	if err := s.rdb.Set(ctx, s.key(ownerID), b, 0).Err(); err != nil {
		return utils.E(utils.CodeUnavailable, op, "resume storage unavailable", err)
	}
	return nil
}
