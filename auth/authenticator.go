package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// ErrInvalidCredentials matches every rejected login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RejectedError is a login the server or credential check refused.
// Its text is shown to the user unchanged.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// Result is a successful login.
type Result struct {
	Token string `json:"token"`
}

// Authenticator checks credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, c Credentials) (Result, error)
}

// StaticAuthenticator accepts one hardcoded account after a fixed delay.
type StaticAuthenticator struct {
	Email    string
	Password string
	Delay    time.Duration
	Clock    clockwork.Clock
}

func (a *StaticAuthenticator) Authenticate(ctx context.Context, c Credentials) (Result, error) {
	clock := a.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-clock.After(a.Delay):
	}
	if !strings.EqualFold(strings.TrimSpace(c.Email), a.Email) || c.Password != a.Password {
		return Result{}, &RejectedError{Message: "Invalid email or password"}
	}
	return Result{Token: uuid.NewString()}, nil
}

// LoginResponse is the body of the login endpoint.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// HTTPAuthenticator posts the credentials as JSON to a login endpoint.
type HTTPAuthenticator struct {
	Endpoint string
	Client   *http.Client
}

func (a *HTTPAuthenticator) Authenticate(ctx context.Context, c Credentials) (Result, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to send login request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var out LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Result{}, fmt.Errorf("login request failed with status %d", resp.StatusCode)
		}
		return Result{}, fmt.Errorf("failed to decode login response: %w", err)
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "Login failed"
		}
		return Result{}, &RejectedError{Message: msg}
	}
	return Result{Token: out.Token}, nil
}
