package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"stressdost/internal/model"
	"stressdost/internal/repository"
)

const sessionTTL = 10 * time.Minute

// SessionCache is a Redis JSON cache for sessions.
type SessionCache interface {
	Set(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{client: client}
}

func (c *sessionCache) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "session:"+session.ID, data, sessionTTL).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := c.client.Get(ctx, "session:"+id).Result()
	if err != nil {
		return nil, err
	}
	var session model.Session
	err = json.Unmarshal([]byte(data), &session)
	return &session, err
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "session:"+id).Err()
}

// cachedSessionRepo layers the Redis cache over a SessionRepo: read-through
// on GetByID, write-through on Create and Update. Cache failures are logged
// and ignored; the store is the source of truth.
type cachedSessionRepo struct {
	repo  repository.SessionRepo
	cache SessionCache
}

// NewCachedSessionRepo wraps a repository with the session cache.
func NewCachedSessionRepo(repo repository.SessionRepo, cache SessionCache) repository.SessionRepo {
	return &cachedSessionRepo{repo: repo, cache: cache}
}

func (r *cachedSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if err := r.repo.Create(ctx, session); err != nil {
		return err
	}
	if err := r.cache.Set(ctx, session); err != nil {
		log.Printf("session cache set %s failed: %v", session.ID, err)
	}
	return nil
}

func (r *cachedSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	if session, err := r.cache.Get(ctx, id); err == nil && session != nil {
		return session, nil
	}
	session, err := r.repo.GetByID(ctx, id)
	if err != nil || session == nil {
		return session, err
	}
	if err := r.cache.Set(ctx, session); err != nil {
		log.Printf("session cache set %s failed: %v", id, err)
	}
	return session, nil
}

func (r *cachedSessionRepo) Update(ctx context.Context, session *model.Session) error {
	if err := r.repo.Update(ctx, session); err != nil {
		return err
	}
	if err := r.cache.Set(ctx, session); err != nil {
		log.Printf("session cache set %s failed: %v", session.ID, err)
	}
	return nil
}

func (r *cachedSessionRepo) Delete(ctx context.Context, id string) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		log.Printf("session cache delete %s failed: %v", id, err)
	}
	return nil
}
