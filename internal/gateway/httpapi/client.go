package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matchbook-app/matchbook-client/internal/domain"
	"github.com/matchbook-app/matchbook-client/internal/gateway"
)

// Client talks to the remote profile service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu          sync.RWMutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

var _ gateway.ProfileGateway = (*Client)(nil)

type checkEmailRequest struct {
	Email string `json:"email"`
}

type checkEmailResponse struct {
	Exists bool `json:"exists"`
}

type signInRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsNewUser bool   `json:"isNewUser"`
}

type signInResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	Profile *domain.Profile `json:"profile"`
	Message string          `json:"message"`
}

type personalityRequest struct {
	Personality  map[string]string `json:"personality"`
	IdealPartner string            `json:"idealPartner"`
}

// CheckEmail implements the idempotent account-existence check.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var resp checkEmailResponse
	err := c.do(ctx, http.MethodPost, "/auth/check-email", checkEmailRequest{Email: email}, &resp)
	if err != nil {
		// The auth service answers 404 for unknown emails.
		if errors.Is(err, domain.ErrProfileNotFound) {
			return false, nil
		}
		return false, err
	}
	return resp.Exists, nil
}

// SignIn authenticates and records the bearer token for later calls.
func (c *Client) SignIn(ctx context.Context, email, password string, isNewUser bool) (*gateway.SignInResult, error) {
	var resp signInResponse
	req := signInRequest{Email: email, Password: password, IsNewUser: isNewUser}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, domain.ErrAuthRejected
	}
	c.setToken(resp.Token)
	if resp.Profile == nil {
		resp.Profile = domain.NewProfile(email)
	}
	return &gateway.SignInResult{Token: resp.Token, Profile: resp.Profile}, nil
}

func (c *Client) FetchCurrent(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.do(ctx, http.MethodGet, "/profiles/current", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) CreateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	var stored domain.Profile
	if err := c.do(ctx, http.MethodPost, "/profiles", p, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (c *Client) UpdateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if p.ID == "" {
		return nil, domain.ErrProfileNotFound
	}
	var stored domain.Profile
	if err := c.do(ctx, http.MethodPut, "/profiles/"+p.ID, p, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (c *Client) UpdatePersonality(ctx context.Context, profileID string, personality map[string]string, idealPartner string) (*domain.Profile, error) {
	if profileID == "" {
		return nil, domain.ErrProfileNotFound
	}
	req := personalityRequest{Personality: personality, IdealPartner: idealPartner}
	var stored domain.Profile
	if err := c.do(ctx, http.MethodPut, "/profiles/"+profileID+"/personality", req, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// ClearCredentials drops the session token on sign-out.
func (c *Client) ClearCredentials() {
	c.mu.Lock()
	c.token = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()
}

// setToken stores the bearer token and reads its expiry from the JWT
// claims. The signature is the server's to verify; the client only needs
// the exp claim to fail fast instead of sending dead tokens.
func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.tokenExpiry = time.Time{}
	if token == "" {
		return
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		c.logger.Debug("session token is not a JWT, skipping expiry tracking", zap.Error(err))
		return
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		c.tokenExpiry = exp.Time
	}
}

func (c *Client) bearer() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token != "" && !c.tokenExpiry.IsZero() && time.Now().After(c.tokenExpiry) {
		return "", domain.ErrAuthRejected
	}
	return c.token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	token, err := c.bearer()
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("remote call failed", zap.String("path", path), zap.Error(err))
		return &domain.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if err := c.checkStatus(method, path, resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.NetworkError{Op: method + " " + path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func (c *Client) checkStatus(method, path string, resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrProfileNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrAuthRejected
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrConflict
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("remote call returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &domain.NetworkError{
			Op:  method + " " + path,
			Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(snippet)),
		}
	}
}
