package repository

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// BrokenMediaRepository holds the items an admin has flagged as broken so
// every visitor gets a placeholder instead. Members are "<kind>:<id>".
type BrokenMediaRepository interface {
	Mark(ctx context.Context, member string) error
	Clear(ctx context.Context, member string) error
	Members(ctx context.Context) (map[string]struct{}, error)
}

const brokenMediaKey = "gallery:broken"

type redisBrokenMediaRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBrokenMediaRepository(client *redis.Client, ttl time.Duration) BrokenMediaRepository {
	return &redisBrokenMediaRepository{client: client, ttl: ttl}
}

func (r *redisBrokenMediaRepository) Mark(ctx context.Context, member string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, brokenMediaKey, member)
		pipe.Expire(ctx, brokenMediaKey, r.ttl)
		return nil
	})
	return err
}

func (r *redisBrokenMediaRepository) Clear(ctx context.Context, member string) error {
	return r.client.SRem(ctx, brokenMediaKey, member).Err()
}

func (r *redisBrokenMediaRepository) Members(ctx context.Context) (map[string]struct{}, error) {
	members, err := r.client.SMembers(ctx, brokenMediaKey).Result()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	return set, nil
}

type memoryBrokenMediaRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	members map[string]time.Time
}

// NewMemoryBrokenMediaRepository keeps each flag for ttl after it was last
// marked.
func NewMemoryBrokenMediaRepository(ttl time.Duration) BrokenMediaRepository {
	return &memoryBrokenMediaRepository{ttl: ttl, members: map[string]time.Time{}}
}

func (r *memoryBrokenMediaRepository) Mark(_ context.Context, member string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[member] = time.Now().Add(r.ttl)
	return nil
}

func (r *memoryBrokenMediaRepository) Clear(_ context.Context, member string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, member)
	return nil
}

func (r *memoryBrokenMediaRepository) Members(_ context.Context) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	set := make(map[string]struct{}, len(r.members))
	for m, expires := range r.members {
		if now.After(expires) {
			delete(r.members, m)
			continue
		}
		set[m] = struct{}{}
	}
	return set, nil
}
