// File: internal/infra/web/handlers.go
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/model"
	"resume-checkout/internal/domain/ports/adapter"
	"resume-checkout/internal/infra/logging"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError maps domain sentinels onto distinct status codes so a client can
// tell an expired session from a replayed one without parsing messages.
func writeError(w http.ResponseWriter, err error) {
	code := "internal"
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		code, status = "session_not_found", http.StatusNotFound
	case errors.Is(err, domain.ErrSessionExpired):
		code, status = "session_expired", http.StatusGone
	case errors.Is(err, domain.ErrSessionAlreadyCompleted):
		code, status = "session_already_completed", http.StatusConflict
	case errors.Is(err, domain.ErrInvalidSignature):
		code, status = "invalid_signature", http.StatusForbidden
	case errors.Is(err, domain.ErrPricingUnavailable):
		code, status = "pricing_unavailable", http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUnknownProduct):
		code, status = "unknown_product", http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		code, status = "invalid_argument", http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /pricing/{region}
func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")
	ctx := logging.WithRegion(r.Context(), region)

	prices, version, err := s.pricingUC.RegionTable(ctx, region)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Region       string                 `json:"region"`
		TableVersion string                 `json:"table_version"`
		Prices       []*model.RegionalPrice `json:"prices"`
	}{
		Region:       region,
		TableVersion: version,
		Prices:       prices,
	})
}

type createSessionRequest struct {
	ProductID   string        `json:"product_id"`
	ProductType string        `json:"product_type"`
	Region      string        `json:"region"`
	Payload     model.Payload `json:"payload"`
}

// POST /payment/session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Code: "invalid_argument"})
		return
	}

	res, err := s.checkoutUC.CreatePayment(r.Context(), req.ProductID, model.ProductType(req.ProductType), req.Region, req.Payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

type returnResponse struct {
	SessionID   string         `json:"session_id"`
	Status      string         `json:"status"`
	ProductID   string         `json:"product_id"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency"`
	Payload     *model.Payload `json:"payload"`
	Report      any            `json:"report,omitempty"`
	ReportError string         `json:"report_error,omitempty"`
}

// GET /payment/return?session_id=...&sig=...
//
// Redemption and report generation are deliberately decoupled: once the
// session is redeemed the buyer keeps the payload even if the analyzer is
// down, so a failed report never burns the purchase silently.
func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sessionID := q.Get("session_id")
	sig := q.Get("sig")
	ctx := logging.WithSessionRef(r.Context(), sessionID)

	sess, err := s.redeemUC.VerifyAndRedeem(ctx, sessionID, sig)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := returnResponse{
		SessionID: sess.ID,
		Status:    string(sess.Status),
		ProductID: sess.ProductID,
		Amount:    sess.Amount,
		Currency:  sess.Currency,
		Payload:   &sess.Payload,
	}
	if s.analyzer != nil {
		report, aerr := s.analyze(ctx, sess)
		if aerr != nil {
			logging.With(ctx, s.log).Error().Err(aerr).Msg("analysis failed after redemption")
			resp.ReportError = "report generation failed; your purchase is recorded, retry support is available"
		} else {
			resp.Report = report
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) analyze(ctx context.Context, sess *model.PaymentSession) (*adapter.AnalysisReport, error) {
	actx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()
	return s.analyzer.Analyze(actx, adapter.AnalysisRequest{
		ProductID:   sess.ProductID,
		ProductType: sess.ProductType,
		Payload:     sess.Payload,
	})
}

type adminLoginRequest struct {
	Secret string `json:"secret"`
}

// POST /admin/login
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if s.adminKey == "" || s.auth == nil {
		s.log.Error().Msg("admin secret is not configured")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Code: "invalid_argument"})
		return
	}
	if req.Secret != s.adminKey {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "mint token", Code: "internal"})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: token})
}

// GET /admin/stats
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsUC.Totals(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "stats unavailable", Code: "internal"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
