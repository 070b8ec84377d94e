//go:build !integration

package model_test

import (
	"testing"
	"time"

	"resume-checkout/internal/domain/model"
)

func TestNewSessionRef(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref, err := model.NewSessionRef()
		if err != nil {
			t.Fatalf("new ref: %v", err)
		}
		if len(ref) != 32 {
			t.Fatalf("want 32 hex chars, got %d (%q)", len(ref), ref)
		}
		if seen[ref] {
			t.Fatalf("duplicate ref %q", ref)
		}
		seen[ref] = true
	}
}

func TestNewPaymentSession(t *testing.T) {
	product := model.Product{ID: "resume_analysis", Type: model.ProductTypeIndividual, Name: "Resume Analysis"}
	price := &model.RegionalPrice{ProductID: "resume_analysis", Region: "PK", Amount: 1200, Currency: "PKR", Source: model.PriceSourceLive}
	payload := model.Payload{ResumeText: "text"}

	sess, err := model.NewPaymentSession(product, price, payload, time.Hour)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if sess.Status != model.SessionStatusPending {
		t.Fatalf("want pending, got %s", sess.Status)
	}
	if sess.Amount != 1200 || sess.Currency != "PKR" || sess.PriceSource != model.PriceSourceLive {
		t.Fatalf("price not snapshotted: %+v", sess)
	}
	if !sess.ExpiresAt.After(sess.CreatedAt) {
		t.Fatalf("expiry not in the future: %v / %v", sess.CreatedAt, sess.ExpiresAt)
	}
	if sess.ExpiredAt(sess.CreatedAt) {
		t.Fatal("fresh session must not be expired")
	}
	if !sess.ExpiredAt(sess.ExpiresAt) {
		t.Fatal("session must be expired exactly at the deadline")
	}
}

func TestPaymentSession_Clone(t *testing.T) {
	now := time.Now()
	sess := &model.PaymentSession{ID: "abc", Status: model.SessionStatusCompleted, CompletedAt: &now}

	cp := sess.Clone()
	later := now.Add(time.Minute)
	cp.CompletedAt = &later
	cp.Status = model.SessionStatusExpired

	if sess.Status != model.SessionStatusCompleted || !sess.CompletedAt.Equal(now) {
		t.Fatalf("mutating the clone leaked into the original: %+v", sess)
	}
}

func TestPayload_Validate(t *testing.T) {
	if err := (model.Payload{ResumeText: "hi"}).Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
	if err := (model.Payload{ResumeText: " \n\t "}).Validate(); err == nil {
		t.Fatal("whitespace-only resume accepted")
	}
	p := model.Payload{ResumeText: "hi", JobPosting: "  "}
	if p.HasJobPosting() {
		t.Fatal("blank job posting should not count")
	}
}
