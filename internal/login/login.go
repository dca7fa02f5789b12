// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package login implements the sign-in page controller.

It owns the form state (identifier, secret, remember toggle), validates fields,
calls a simulated authentication backend and drives the page feedback through
injected collaborators.

Architecture:

  - Validators: Pure functions from raw field text to a [FieldResult].
  - MockService: The in-memory stand-in for a user directory, with artificial latency.
  - Controller: The submission state machine (Idle, Submitting, Succeeded, Failed).
  - Handler: Exposes page sessions over JSON so a browser page can drive a controller.

State machine:

	Idle --submit(valid)--> Submitting --success--> Succeeded (terminal, redirects)
	                                   \--failure--> Failed --> Idle

Only one submission is in flight per controller. Inputs are enabled iff the
state is Idle or Failed.
*/
package login

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// # Form Fields

// Field names an input of the sign-in form.
type Field string

const (
	FieldIdentifier Field = "identifier"
	FieldSecret     Field = "secret"
)

// Fields lists every form input in display order.
var Fields = []Field{FieldIdentifier, FieldSecret}

// ParseField maps a raw name to a known field.
func ParseField(name string) (Field, bool) {
	switch Field(name) {
	case FieldIdentifier, FieldSecret:
		return Field(name), true
	default:
		return "", false
	}
}

// # Credentials

// Credentials is built fresh for every submission attempt and never stored,
// except for Identifier when Remember is set and the attempt succeeds.
type Credentials struct {
	Identifier string
	Secret     string
	Remember   bool
}

// # Controller State

// State is the submission state of a controller.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// InputsEnabled reports whether the form accepts interaction in this state.
func (s State) InputsEnabled() bool {
	return s == StateIdle || s == StateFailed
}

// # Social Providers

// Platform is a social sign-in provider.
type Platform string

const (
	PlatformGoogle   Platform = "google"
	PlatformFacebook Platform = "facebook"
	PlatformTwitter  Platform = "twitter"
)

// ParsePlatform maps a provider name to a [Platform].
// Anything that is neither Google nor Facebook is treated as Twitter.
func ParsePlatform(name string) Platform {
	switch Platform(strings.ToLower(strings.TrimSpace(name))) {
	case PlatformGoogle:
		return PlatformGoogle
	case PlatformFacebook:
		return PlatformFacebook
	default:
		return PlatformTwitter
	}
}

// Title returns the display name, e.g. "Google".
func (p Platform) Title() string {
	return cases.Title(language.English).String(string(p))
}
