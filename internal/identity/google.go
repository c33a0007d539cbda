package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/askhatb/challenge-on/internal/apperr"
)

const defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// Identity is the profile extracted from a verified Google ID token.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier validates Google-issued ID tokens against the tokeninfo
// endpoint, which checks the signature server-side and echoes the claims back.
type GoogleVerifier struct {
	Audience string

	// TokenInfoURL can be overridden in tests.
	TokenInfoURL string
	HTTPClient   *http.Client
}

// NewGoogleVerifier creates a verifier bound to the given OAuth client id.
func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{
		Audience:     audience,
		TokenInfoURL: defaultTokenInfoURL,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenInfoResponse struct {
	Aud   string `json:"aud"`
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Exp   string `json:"exp"`
}

// Verify checks the ID token and returns the identity it proves. Any failure,
// including a wrong audience or expiry, maps to apperr.ErrInvalidIdentityToken.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	if idToken == "" {
		return nil, fmt.Errorf("%w: empty token", apperr.ErrInvalidIdentityToken)
	}

	endpoint := v.TokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokeninfo request: %v", err)
	}

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tokeninfo returned status %d", apperr.ErrInvalidIdentityToken, resp.StatusCode)
	}

	var info tokenInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: malformed tokeninfo response", apperr.ErrInvalidIdentityToken)
	}

	if info.Aud != v.Audience {
		return nil, fmt.Errorf("%w: audience mismatch", apperr.ErrInvalidIdentityToken)
	}

	if exp, err := strconv.ParseInt(info.Exp, 10, 64); err == nil {
		if time.Unix(exp, 0).Before(time.Now()) {
			return nil, fmt.Errorf("%w: token expired", apperr.ErrInvalidIdentityToken)
		}
	}

	if info.Sub == "" {
		return nil, fmt.Errorf("%w: missing subject", apperr.ErrInvalidIdentityToken)
	}

	return &Identity{
		Subject: info.Sub,
		Email:   info.Email,
		Name:    info.Name,
	}, nil
}
