package store

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/repository"
	"resume-checkout/internal/infra/metrics"
)

var _ repository.SessionStore = (*MemoryStore)(nil)

const shardCount = 32

// MemoryStore keeps payment sessions in a sharded in-process map. The shard
// mutex is the per-key atomicity boundary for TryComplete: it is held only
// for the check-and-set, never across I/O, so unrelated sessions on other
// shards never contend.
type MemoryStore struct {
	shards [shardCount]memShard
	grace  time.Duration
}

type memShard struct {
	mu       sync.RWMutex
	sessions map[string]*model.PaymentSession
}

// NewMemoryStore builds a store that keeps expired sessions visible for
// `grace` past their deadline before eviction, so a late return still gets
// a distinguishable "expired" instead of "not found".
func NewMemoryStore(grace time.Duration) *MemoryStore {
	s := &MemoryStore{grace: grace}
	for i := range s.shards {
		s.shards[i].sessions = make(map[string]*model.PaymentSession)
	}
	return s
}

func (s *MemoryStore) shard(id string) *memShard {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.shards[h.Sum32()%shardCount]
}

func (s *MemoryStore) Create(_ context.Context, sess *model.PaymentSession) error {
	if sess == nil || sess.ID == "" {
		return domain.ErrInvalidArgument
	}
	sh := s.shard(sess.ID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.sessions[sess.ID] = sess.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.PaymentSession, error) {
	sh := s.shard(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	sess, ok := sh.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// TryComplete performs the atomic check-and-set: exactly one concurrent
// caller for a given id observes success.
func (s *MemoryStore) TryComplete(_ context.Context, id string, now time.Time) (*model.Payload, error) {
	sh := s.shard(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sess, ok := sh.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	switch sess.Status {
	case model.SessionStatusCompleted:
		return nil, domain.ErrSessionAlreadyCompleted
	case model.SessionStatusExpired:
		return nil, domain.ErrSessionExpired
	}
	if sess.ExpiredAt(now) {
		// Forward-only: mark it so later callers and the sweeper agree.
		sess.Status = model.SessionStatusExpired
		return nil, domain.ErrSessionExpired
	}
	sess.Status = model.SessionStatusCompleted
	completedAt := now
	sess.CompletedAt = &completedAt
	payload := sess.Payload
	return &payload, nil
}

func (s *MemoryStore) ExpireSweep(_ context.Context, now time.Time) (expired, evicted int, err error) {
	live := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		for id, sess := range sh.sessions {
			if sess.Status == model.SessionStatusPending && sess.ExpiredAt(now) {
				sess.Status = model.SessionStatusExpired
				expired++
			}
			if now.Sub(sess.ExpiresAt) > s.grace {
				delete(sh.sessions, id)
				evicted++
			}
		}
		live += len(sh.sessions)
		sh.mu.Unlock()
	}
	metrics.SetSessionsLive(live)
	return expired, evicted, nil
}
