package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every network call; past it the operation
// fails with KindNetwork.
const DefaultTimeout = 10 * time.Second

// Identity mirrors the server's authorization view of an account.
type Identity struct {
	ID                    string     `json:"id"`
	Email                 string     `json:"email"`
	FirstName             string     `json:"firstName"`
	LastName              string     `json:"lastName"`
	IsActive              bool       `json:"isActive"`
	IsAdmin               bool       `json:"isAdmin"`
	SubscriptionPlan      string     `json:"subscriptionPlan"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt,omitempty"`
}

// AuthAPI is the server surface the session manager drives. Satisfied
// by APIClient; tests substitute fakes.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (Identity, string, error)
	Me(ctx context.Context, token string) (Identity, error)
	Refresh(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}

// APIClient talks to the admin service's auth endpoints.
type APIClient struct {
	baseURL string
	httpc   *http.Client
}

// Option customizes the API client.
type Option func(*APIClient)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *APIClient) { c.httpc = httpc }
}

// NewAPIClient builds a client for the given base URL.
func NewAPIClient(baseURL string, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  Identity `json:"user"`
	Token string   `json:"token"`
}

type meResponse struct {
	User Identity `json:"user"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Login exchanges credentials for an identity and a signed token.
func (c *APIClient) Login(ctx context.Context, email, password string) (Identity, string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return Identity{}, "", err
	}
	return resp.User, resp.Token, nil
}

// Me resolves the identity behind the token.
func (c *APIClient) Me(ctx context.Context, token string) (Identity, error) {
	var resp meResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &resp); err != nil {
		return Identity{}, err
	}
	return resp.User, nil
}

// Refresh exchanges a possibly-expired token for a fresh one.
func (c *APIClient) Refresh(ctx context.Context, token string) (string, error) {
	var resp refreshResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", token, nil, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Logout notifies the server. Callers treat this as fire-and-forget.
func (c *APIClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	// A 5xx is the server's own fault, not a verdict on the
	// credential; it must stay recoverable.
	if resp.StatusCode >= 500 {
		return networkError(fmt.Errorf("server fault: status %d", resp.StatusCode))
	}
	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error.Code == "" {
			return networkError(fmt.Errorf("unexpected status %d", resp.StatusCode))
		}
		return &AuthError{Kind: kindFromCode(envelope.Error.Code), Message: envelope.Error.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return networkError(fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}
