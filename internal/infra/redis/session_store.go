package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore keeps payment sessions in Redis so the checkout survives a
// process restart and can run on more than one instance. The session body
// is a JSON blob; the status lives in its own small key so redemption can
// be a single Lua check-and-set.
type SessionStore struct {
	client *Client
	ttl    time.Duration
	grace  time.Duration
}

func NewSessionStore(client *Client, ttl, grace time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl, grace: grace}
}

func bodyKey(id string) string   { return fmt.Sprintf("checkout:sess:%s", id) }
func statusKey(id string) string { return fmt.Sprintf("checkout:stat:%s", id) }

// luaTransition moves a pending status to ARGV[1] and reports what it saw.
// KEEPTTL preserves the eviction deadline set at creation.
var luaTransition = redis.NewScript(`
local s = redis.call("GET", KEYS[1])
if not s then
	return "missing"
end
if s == "pending" then
	redis.call("SET", KEYS[1], ARGV[1], "KEEPTTL")
	return "ok"
end
return s`)

func (s *SessionStore) Create(ctx context.Context, sess *model.PaymentSession) error {
	if sess == nil || sess.ID == "" {
		return domain.ErrInvalidArgument
	}
	body, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	// Both keys outlive the session by the grace window; after that Redis
	// evicts and late returns degrade to "not found".
	keep := s.ttl + s.grace
	if err := s.client.Set(ctx, bodyKey(sess.ID), body, keep); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if err := s.client.Set(ctx, statusKey(sess.ID), string(model.SessionStatusPending), keep); err != nil {
		return fmt.Errorf("store session status: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*model.PaymentSession, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := s.client.Get(ctx, statusKey(id))
	if err == nil {
		sess.Status = model.SessionStatus(status)
	}
	return sess, nil
}

func (s *SessionStore) TryComplete(ctx context.Context, id string, now time.Time) (*model.Payload, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	target := model.SessionStatusCompleted
	if sess.ExpiredAt(now) {
		target = model.SessionStatusExpired
	}

	res, err := luaTransition.Run(ctx, s.client.cli, []string{statusKey(id)}, string(target)).Result()
	if err != nil {
		return nil, fmt.Errorf("session transition: %w", err)
	}
	switch res {
	case "ok":
		if target == model.SessionStatusExpired {
			return nil, domain.ErrSessionExpired
		}
		payload := sess.Payload
		return &payload, nil
	case "missing":
		return nil, domain.ErrSessionNotFound
	case string(model.SessionStatusCompleted):
		return nil, domain.ErrSessionAlreadyCompleted
	case string(model.SessionStatusExpired):
		return nil, domain.ErrSessionExpired
	default:
		return nil, fmt.Errorf("session transition: unexpected state %v", res)
	}
}

// ExpireSweep walks status keys and marks overdue pending sessions expired.
// Eviction itself is Redis TTL; the sweep only keeps statuses honest for
// late returns within the grace window.
func (s *SessionStore) ExpireSweep(ctx context.Context, now time.Time) (expired, evicted int, err error) {
	iter := s.client.cli.Scan(ctx, 0, statusKey("*"), 200).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id := key[len("checkout:stat:"):]
		sess, err := s.load(ctx, id)
		if err != nil {
			continue // body already evicted; TTL will clear the status key
		}
		if !sess.ExpiredAt(now) {
			continue
		}
		res, err := luaTransition.Run(ctx, s.client.cli, []string{key}, string(model.SessionStatusExpired)).Result()
		if err == nil && res == "ok" {
			expired++
		}
	}
	if err := iter.Err(); err != nil {
		return expired, 0, fmt.Errorf("session sweep: %w", err)
	}
	return expired, 0, nil
}

func (s *SessionStore) load(ctx context.Context, id string) (*model.PaymentSession, error) {
	raw, err := s.client.Get(ctx, bodyKey(id))
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess model.PaymentSession
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}
