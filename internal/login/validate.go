// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package login

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/taibuivan/signin/internal/platform/i18n"
)

// # Validation Results

// Verdict is the outcome class of a field validation.
type Verdict string

const (
	VerdictValid   Verdict = "valid"
	VerdictInvalid Verdict = "invalid"
	// VerdictWarning is advisory and never blocks submission.
	VerdictWarning Verdict = "warning"
)

// Reason explains an Invalid or Warning verdict.
type Reason string

const (
	ReasonRequired  Reason = "required"
	ReasonMalformed Reason = "malformed"
	ReasonTooShort  Reason = "too-short"
	ReasonWeak      Reason = "weak"
)

// Strength is the tier of a secret's strength score.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// FieldResult is the validation outcome of a single field.
type FieldResult struct {
	Verdict  Verdict  `json:"verdict"`
	Reason   Reason   `json:"reason,omitempty"`
	Strength Strength `json:"strength,omitempty"`
	Score    int      `json:"score,omitempty"`
}

// Blocking reports whether this result prevents submission.
func (r FieldResult) Blocking() bool {
	return r.Verdict == VerdictInvalid
}

// MessageKey returns the catalog key of the annotation shown under field,
// or "" for a plain Valid result.
func (r FieldResult) MessageKey(field Field) i18n.Key {
	switch r.Reason {
	case ReasonRequired:
		if field == FieldSecret {
			return i18n.SecretRequired
		}
		return i18n.IdentifierRequired
	case ReasonMalformed:
		return i18n.IdentifierMalformed
	case ReasonTooShort:
		return i18n.SecretTooShort
	case ReasonWeak:
		return i18n.SecretWeak
	default:
		return ""
	}
}

// # Rules

const (
	minSecretLength    = 6
	strongSecretLength = 8
	weakScoreCeiling   = 2
	maxStrengthScore   = 5
)

var (
	// identifierShape is local-part@domain.tld with no whitespace and a single '@' per part.
	// Whitespace covers \v, the Unicode separators and the BOM, not only ASCII spaces.
	identifierShape = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

	hasLower  = regexp.MustCompile(`[a-z]`)
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
	hasSymbol = regexp.MustCompile(`[^A-Za-z0-9]`)
)

/*
ValidateIdentifier checks the email-shaped login handle.

Surrounding whitespace is ignored.

Returns:
  - Invalid(required): empty or whitespace-only input
  - Invalid(malformed): not shaped like local@domain.tld
  - Valid otherwise
*/
func ValidateIdentifier(raw string) FieldResult {
	identifier := normalizeIdentifier(raw)

	if identifier == "" {
		return FieldResult{Verdict: VerdictInvalid, Reason: ReasonRequired}
	}

	if !identifierShape.MatchString(identifier) {
		return FieldResult{Verdict: VerdictInvalid, Reason: ReasonMalformed}
	}

	return FieldResult{Verdict: VerdictValid}
}

// normalizeIdentifier drops surrounding whitespace from a typed identifier.
func normalizeIdentifier(raw string) string {
	return strings.TrimFunc(raw, isBlank)
}

// isBlank reports Unicode whitespace, including the zero-width no-break space.
func isBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

/*
ValidateSecret checks the password field.

The secret is taken as typed; whitespace counts.

Returns:
  - Invalid(required): empty input
  - Invalid(too-short): fewer than 6 characters
  - Warning(weak): strength score of 2 or less
  - Valid otherwise, with the strength tier attached
*/
func ValidateSecret(raw string) FieldResult {
	if raw == "" {
		return FieldResult{Verdict: VerdictInvalid, Reason: ReasonRequired}
	}

	if utf8.RuneCountInString(raw) < minSecretLength {
		return FieldResult{Verdict: VerdictInvalid, Reason: ReasonTooShort}
	}

	score := SecretStrength(raw)
	strength := StrengthOf(score)

	if strength == StrengthWeak {
		return FieldResult{Verdict: VerdictWarning, Reason: ReasonWeak, Strength: strength, Score: score}
	}

	return FieldResult{Verdict: VerdictValid, Strength: strength, Score: score}
}

// SecretStrength scores a secret from 0 to 5, one point per satisfied check:
// length of at least 8, a lowercase letter, an uppercase letter, a digit, a symbol.
func SecretStrength(raw string) int {
	score := 0

	if utf8.RuneCountInString(raw) >= strongSecretLength {
		score++
	}

	for _, check := range []*regexp.Regexp{hasLower, hasUpper, hasDigit, hasSymbol} {
		if check.MatchString(raw) {
			score++
		}
	}

	return score
}

// StrengthOf maps a score to its tier.
func StrengthOf(score int) Strength {
	switch {
	case score <= weakScoreCeiling:
		return StrengthWeak
	case score < maxStrengthScore:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}

// validateField dispatches to the validator of field.
func validateField(field Field, raw string) FieldResult {
	if field == FieldSecret {
		return ValidateSecret(raw)
	}
	return ValidateIdentifier(raw)
}
