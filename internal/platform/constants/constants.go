// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Sign-in: Simulated latencies, redirect targets and the remembered-identity key.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "signin-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Submissions block for the simulated latency, so this must stay well above it.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sign-in Simulation

const (
	// LoginLatency is the artificial delay of a credential check.
	LoginLatency = 1500 * time.Millisecond

	// SocialLatency is the artificial delay before a social provider hand-off.
	SocialLatency = 1000 * time.Millisecond

	// ResetLatency is the artificial delay of a password-reset request.
	ResetLatency = 1500 * time.Millisecond

	// RedirectDelay is how long the success confirmation stays before navigation.
	RedirectDelay = 2000 * time.Millisecond

	// SignupRedirectDelay is how long the signup notice stays before navigation.
	SignupRedirectDelay = 1000 * time.Millisecond

	// NotificationTTL is how long a notification stays before it is auto-dismissed.
	NotificationTTL = 5000 * time.Millisecond

	// ValidationDebounce is the quiet period after typing before a field is validated.
	ValidationDebounce = 300 * time.Millisecond

	// SessionTTL is how long an idle page session is kept in memory.
	SessionTTL = 30 * time.Minute

	// SessionCleanupInterval is how often expired page sessions are evicted.
	SessionCleanupInterval = 1 * time.Minute
)

// # Form Limits

const (
	// MaxFieldLength caps a single form field value in characters.
	MaxFieldLength = 256
)

// # Navigation

const (
	// DestinationDashboard is where a successful sign-in lands.
	DestinationDashboard = "/dashboard"

	// DestinationSignup is the registration page.
	DestinationSignup = "/signup"
)

// # Remembered Identity

const (
	// RememberedIdentityKey is the fixed slot name of the remembered identifier.
	RememberedIdentityKey = "rememberedEmail"
)

// # HTTP Headers

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderXRealIP        = "X-Real-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderOrigin         = "Origin"
	HeaderAcceptLanguage = "Accept-Language"
	HeaderRetryAfter     = "Retry-After"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)
