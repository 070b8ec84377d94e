package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"resume-checkout/internal/domain"
	"resume-checkout/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*HostedGateway)(nil)

// HostedGateway points buyers at the provider's hosted checkout page. The
// redirect embeds only the opaque session reference; the provider echoes it
// back (plus our signature) on the return URL when the buyer finishes.
type HostedGateway struct {
	baseURL      string
	checkoutPath string
	returnURL    string
	signingKey   []byte // empty disables return signing
}

func NewHostedGateway(baseURL, checkoutPath, returnURL, signingKey string) (*HostedGateway, error) {
	if baseURL == "" {
		return nil, errors.New("payment gateway base url empty")
	}
	if returnURL == "" {
		return nil, errors.New("payment gateway return url empty")
	}
	if checkoutPath == "" {
		checkoutPath = "/checkout"
	}
	return &HostedGateway{
		baseURL:      strings.TrimRight(baseURL, "/"),
		checkoutPath: checkoutPath,
		returnURL:    returnURL,
		signingKey:   []byte(signingKey),
	}, nil
}

func (g *HostedGateway) Name() string { return "hosted-checkout" }

func (g *HostedGateway) CheckoutURL(sessionID string) (string, error) {
	if sessionID == "" {
		return "", domain.ErrInvalidArgument
	}
	ret, err := url.Parse(g.returnURL)
	if err != nil {
		return "", fmt.Errorf("parse return url: %w", err)
	}
	rq := ret.Query()
	rq.Set("session_id", sessionID)
	if sig := g.SignReturn(sessionID); sig != "" {
		rq.Set("sig", sig)
	}
	ret.RawQuery = rq.Encode()

	q := url.Values{}
	q.Set("ref", sessionID)
	q.Set("return_url", ret.String())
	return fmt.Sprintf("%s%s?%s", g.baseURL, g.checkoutPath, q.Encode()), nil
}

// SignReturn is an HMAC over the session reference. It closes the gap of
// trusting a bare client redirect: a forged return needs the signature,
// not just a reference.
func (g *HostedGateway) SignReturn(sessionID string) string {
	if len(g.signingKey) == 0 {
		return ""
	}
	mac := hmac.New(sha256.New, g.signingKey)
	mac.Write([]byte(sessionID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (g *HostedGateway) VerifyReturn(sessionID, signature string) error {
	if len(g.signingKey) == 0 {
		return nil // signing not configured; accept the bare return
	}
	want := g.SignReturn(sessionID)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return domain.ErrInvalidSignature
	}
	return nil
}
