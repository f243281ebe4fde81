package kiotviet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/webshop/backend/internal/domain/integration"
)

// tokenSafetyMargin is subtracted from the reported lifetime so a token
// is refreshed slightly before the identity server expires it.
const tokenSafetyMargin = 60 * time.Second

// TokenManager caches a bearer token obtained via the client-credentials
// grant and refreshes it on demand. Concurrent refreshes are collapsed
// into one in-flight request.
type TokenManager struct {
	config     *Config
	httpClient *http.Client
	now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenManager creates a token manager. It fails fast when the client
// credentials are not configured.
func NewTokenManager(config *Config, httpClient *http.Client) (*TokenManager, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, integration.ErrMissingCredentials
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second}
	}
	return &TokenManager{
		config:     config,
		httpClient: httpClient,
		now:        time.Now,
	}, nil
}

// Token returns the cached bearer token, refreshing it first when it is
// absent or expired.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.now().Before(m.expiresAt) {
		return m.token, nil
	}

	token, expiresIn, err := m.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	m.token = token
	m.expiresAt = m.now().Add(time.Duration(expiresIn)*time.Second - tokenSafetyMargin)
	return m.token, nil
}

// Invalidate drops the cached token so the next call refreshes it
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expiresAt = time.Time{}
}

func (m *TokenManager) fetchToken(ctx context.Context) (string, int64, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.config.ClientID)
	form.Set("client_secret", m.config.ClientSecret)
	form.Set("scopes", "PublicApi.Access")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("kiotviet: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", integration.ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", 0, fmt.Errorf("kiotviet: failed to read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, fmt.Errorf("%w: HTTP %d", integration.ErrAuthFailed, resp.StatusCode)
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", 0, fmt.Errorf("%w: %v", integration.ErrAuthFailed, err)
	}
	if payload.AccessToken == "" {
		return "", 0, fmt.Errorf("%w: empty access token", integration.ErrAuthFailed)
	}

	return payload.AccessToken, payload.ExpiresIn, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
