//go:build !integration

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/adapter"
	"resume-checkout/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

// ---- Mock SessionStore ----

type MockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.PaymentSession

	CreateFunc      func(ctx context.Context, sess *model.PaymentSession) error
	TryCompleteFunc func(ctx context.Context, id string, now time.Time) (*model.Payload, error)
}

var _ repository.SessionStore = (*MockSessionStore)(nil)

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: map[string]*model.PaymentSession{}}
}

func (m *MockSessionStore) Create(ctx context.Context, sess *model.PaymentSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sess)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess.Clone()
	return nil
}

func (m *MockSessionStore) Get(_ context.Context, id string) (*model.PaymentSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (m *MockSessionStore) TryComplete(ctx context.Context, id string, now time.Time) (*model.Payload, error) {
	if m.TryCompleteFunc != nil {
		return m.TryCompleteFunc(ctx, id, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
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
		sess.Status = model.SessionStatusExpired
		return nil, domain.ErrSessionExpired
	}
	sess.Status = model.SessionStatusCompleted
	sess.CompletedAt = &now
	payload := sess.Payload
	return &payload, nil
}

func (m *MockSessionStore) ExpireSweep(_ context.Context, now time.Time) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expired := 0
	for _, sess := range m.sessions {
		if sess.Status == model.SessionStatusPending && sess.ExpiredAt(now) {
			sess.Status = model.SessionStatusExpired
			expired++
		}
	}
	return expired, 0, nil
}

// ---- Mock PricingProvider ----

type MockPricingProvider struct {
	mu    sync.Mutex
	calls int

	FetchFunc func(ctx context.Context, productID, region string) (*model.RegionalPrice, error)
}

var _ adapter.PricingProvider = (*MockPricingProvider)(nil)

func (m *MockPricingProvider) Name() string { return "mock-pricing" }

func (m *MockPricingProvider) Fetch(ctx context.Context, productID, region string) (*model.RegionalPrice, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.FetchFunc(ctx, productID, region)
}

func (m *MockPricingProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ---- Mock KVCache ----

type MockKVCache struct {
	mu    sync.Mutex
	items map[string]string
}

var _ repository.KVCache = (*MockKVCache)(nil)

func NewMockKVCache() *MockKVCache { return &MockKVCache{items: map[string]string{}} }

func (m *MockKVCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return "", repository.ErrCacheMiss
	}
	return v, nil
}

func (m *MockKVCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// ---- Mock PaymentGateway ----

type MockGateway struct {
	VerifyErr error
}

var _ adapter.PaymentGateway = (*MockGateway)(nil)

func (m *MockGateway) Name() string { return "mock-gateway" }

func (m *MockGateway) CheckoutURL(sessionID string) (string, error) {
	return "https://pay.example.test/checkout?ref=" + sessionID, nil
}

func (m *MockGateway) SignReturn(sessionID string) string { return "sig-" + sessionID }

func (m *MockGateway) VerifyReturn(sessionID, signature string) error { return m.VerifyErr }

// ---- Mock PaymentRecordRepository ----

type MockRecordRepo struct {
	mu       sync.Mutex
	Saved    []*model.PaymentRecord
	Redeemed []string

	SaveErr   error
	SumFunc   func(ctx context.Context, period string) (int64, error)
	CountFunc func(ctx context.Context) (map[string]int64, error)
}

var _ repository.PaymentRecordRepository = (*MockRecordRepo)(nil)

func (m *MockRecordRepo) Save(_ context.Context, rec *model.PaymentRecord) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = append(m.Saved, rec)
	return nil
}

func (m *MockRecordRepo) MarkRedeemed(_ context.Context, sessionRef string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Redeemed = append(m.Redeemed, sessionRef)
	return nil
}

func (m *MockRecordRepo) SumRedeemedByPeriod(ctx context.Context, period string) (int64, error) {
	if m.SumFunc != nil {
		return m.SumFunc(ctx, period)
	}
	return 0, nil
}

func (m *MockRecordRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return map[string]int64{}, nil
}
