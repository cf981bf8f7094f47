package flights

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/neexbeast/tourinfo/internal/upstream"
)

// refreshMargin is how long before expiry a token is replaced.
const refreshMargin = 60 * time.Second

// Credentials is the OAuth2 client-credentials pair of the flight provider.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Configured reports whether both halves of the pair are set.
func (c Credentials) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// tokenHolder caches one bearer token. Refreshes are serialized.
type tokenHolder struct {
	endpoint string
	creds    Credentials
	up       *upstream.Client
	now      func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

func (t *tokenHolder) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && t.now().Add(refreshMargin).Before(t.expires) {
		return t.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", t.creds.ClientID)
	form.Set("client_secret", t.creds.ClientSecret)

	var raw tokenResponse
	if err := t.up.PostForm(ctx, t.endpoint, form, &raw); err != nil {
		var se *upstream.StatusError
		if errors.As(err, &se) && (se.StatusCode == http.StatusBadRequest || se.StatusCode == http.StatusUnauthorized) {
			return "", fmt.Errorf("%w: %v", ErrCredentials, err)
		}
		return "", fmt.Errorf("requesting access token: %w", err)
	}
	if raw.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrCredentials)
	}

	t.token = raw.AccessToken
	t.expires = t.now().Add(time.Duration(raw.ExpiresIn) * time.Second)
	return t.token, nil
}

// invalidate drops the cached token so the next call fetches a new one.
func (t *tokenHolder) invalidate() {
	t.mu.Lock()
	t.token = ""
	t.mu.Unlock()
}
