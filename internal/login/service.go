// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"k8s.io/utils/clock"

	"github.com/taibuivan/signin/internal/platform/constants"
	"github.com/taibuivan/signin/internal/platform/i18n"
	"github.com/taibuivan/signin/pkg/uuid"
)

// # Authentication Failures

// FailureReason classifies a rejected authentication.
type FailureReason string

const (
	FailureNotFound    FailureReason = "not_found"
	FailureWrongSecret FailureReason = "wrong_secret"
	FailureDeactivated FailureReason = "deactivated"
	// FailureUnexpected covers backend errors that carry no typed reason.
	FailureUnexpected FailureReason = "unexpected"
)

var (
	ErrNotFound    = errors.New("login: account not found")
	ErrWrongSecret = errors.New("login: wrong secret")
	ErrDeactivated = errors.New("login: account deactivated")
)

// AuthError is the typed rejection returned by an [Authenticator].
type AuthError struct {
	Reason FailureReason
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return "login: authentication failed: " + string(e.Reason)
}

// Unwrap exposes the sentinel of the reason to [errors.Is].
func (e *AuthError) Unwrap() error {
	switch e.Reason {
	case FailureNotFound:
		return ErrNotFound
	case FailureWrongSecret:
		return ErrWrongSecret
	case FailureDeactivated:
		return ErrDeactivated
	default:
		return nil
	}
}

// ReasonOf extracts the failure reason from err.
func ReasonOf(err error) FailureReason {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Reason
	}
	return FailureUnexpected
}

// MessageKey maps the reason 1:1 to its user-facing message.
func (r FailureReason) MessageKey() i18n.Key {
	switch r {
	case FailureNotFound:
		return i18n.ErrAccountNotFound
	case FailureWrongSecret:
		return i18n.ErrInvalidCredentials
	case FailureDeactivated:
		return i18n.ErrAccountDisabled
	default:
		return i18n.ErrUnexpected
	}
}

// # Identity

// Identity is the payload of a successful authentication.
type Identity struct {
	Identifier  string `json:"identifier"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
}

// tokenPrefix marks tokens as simulated; they are opaque and unsigned.
const tokenPrefix = "simulated-token-"

// # Mock Service

// Latency holds the artificial delays of the simulated backend.
// Zero values resolve immediately.
type Latency struct {
	Login  time.Duration
	Social time.Duration
	Reset  time.Duration
}

// DefaultLatency returns the simulated backend delays used in production.
func DefaultLatency() Latency {
	return Latency{
		Login:  constants.LoginLatency,
		Social: constants.SocialLatency,
		Reset:  constants.ResetLatency,
	}
}

// ServiceConfig configures a [MockService].
type ServiceConfig struct {
	Latency Latency
	Clock   clock.Clock
	Logger  *slog.Logger
}

// MockService is an in-memory [Authenticator] backed by a fixed account table.
type MockService struct {
	accounts Accounts
	latency  Latency
	clock    clock.Clock
	logger   *slog.Logger
}

// NewMockService constructs the simulated backend over accounts.
func NewMockService(accounts Accounts, cfg ServiceConfig) *MockService {
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &MockService{
		accounts: accounts,
		latency:  cfg.Latency,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}
}

/*
Authenticate verifies credentials against the account table.

Description: Waits for the login latency, then checks, in order, that the
identifier exists, that the secret matches and that the account is active.

Returns:
  - Identity: Display name is the part before '@'; the token is unique per call
  - error: *AuthError with NotFound, WrongSecret or Deactivated, or ctx.Err()
*/
func (service *MockService) Authenticate(ctx context.Context, credentials Credentials) (Identity, error) {

	if err := service.wait(ctx, service.latency.Login); err != nil {
		return Identity{}, fmt.Errorf("mock_authenticate_interrupted: %w", err)
	}

	record, found := service.accounts.Lookup(credentials.Identifier)

	// Handle errors
	if !found {
		return Identity{}, &AuthError{Reason: FailureNotFound}
	}
	if record.Secret != credentials.Secret {
		return Identity{}, &AuthError{Reason: FailureWrongSecret}
	}
	if !record.Active {
		return Identity{}, &AuthError{Reason: FailureDeactivated}
	}

	displayName, _, _ := strings.Cut(credentials.Identifier, "@")

	service.logger.InfoContext(ctx, "mock_authentication_succeeded",
		slog.String("identifier", MaskIdentifier(credentials.Identifier)),
	)

	return Identity{
		Identifier:  credentials.Identifier,
		DisplayName: displayName,
		Token:       uuid.Prefixed(tokenPrefix),
	}, nil
}

// SocialRedirect simulates the hand-off to a social provider.
func (service *MockService) SocialRedirect(ctx context.Context, platform Platform) error {
	if err := service.wait(ctx, service.latency.Social); err != nil {
		return fmt.Errorf("mock_social_redirect_interrupted: %w", err)
	}

	service.logger.InfoContext(ctx, "mock_social_redirect", slog.String("platform", string(platform)))
	return nil
}

// RequestPasswordReset simulates sending reset instructions to identifier.
func (service *MockService) RequestPasswordReset(ctx context.Context, identifier string) error {
	if err := service.wait(ctx, service.latency.Reset); err != nil {
		return fmt.Errorf("mock_password_reset_interrupted: %w", err)
	}

	service.logger.InfoContext(ctx, "mock_password_reset_requested",
		slog.String("identifier", MaskIdentifier(identifier)),
	)
	return nil
}

// wait suspends for d on the injected clock, or until ctx is done.
func (service *MockService) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := service.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// # Log Helpers

// MaskIdentifier hides all but the first character of the local part,
// e.g. "john@example.com" becomes "j***@example.com".
func MaskIdentifier(identifier string) string {
	local, domain, found := strings.Cut(identifier, "@")
	if !found || local == "" {
		return "***"
	}

	first := []rune(local)[0]
	return string(first) + "***@" + domain
}
