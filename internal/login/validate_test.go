// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package login_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/signin/internal/login"
	"github.com/taibuivan/signin/internal/platform/i18n"
)

/*
TestValidateIdentifier covers the required and shape rules.
*/
func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   login.Verdict
		reason login.Reason
	}{
		{"valid", "admin@example.com", login.VerdictValid, ""},
		{"valid_trimmed", "  user@example.com  ", login.VerdictValid, ""},
		{"valid_subdomain", "a@b.c.d", login.VerdictValid, ""},
		{"empty", "", login.VerdictInvalid, login.ReasonRequired},
		{"whitespace_only", " \t ", login.VerdictInvalid, login.ReasonRequired},
		{"missing_at", "admin.example.com", login.VerdictInvalid, login.ReasonMalformed},
		{"missing_tld", "admin@example", login.VerdictInvalid, login.ReasonMalformed},
		{"missing_local", "@example.com", login.VerdictInvalid, login.ReasonMalformed},
		{"double_at", "a@b@example.com", login.VerdictInvalid, login.ReasonMalformed},
		{"inner_space", "ad min@example.com", login.VerdictInvalid, login.ReasonMalformed},
		{"trailing_dot", "admin@example.", login.VerdictInvalid, login.ReasonMalformed},
		{"inner_vertical_tab", "a\vb@example.com", login.VerdictInvalid, login.ReasonMalformed},
		{"inner_nbsp", "a\u00a0b@example.com", login.VerdictInvalid, login.ReasonMalformed},
		{"inner_em_space", "a\u2003b@example.com", login.VerdictInvalid, login.ReasonMalformed},
		{"domain_nbsp", "a@exa\u00a0mple.com", login.VerdictInvalid, login.ReasonMalformed},
		{"inner_bom", "a\ufeffb@example.com", login.VerdictInvalid, login.ReasonMalformed},
		{"nbsp_only", "\u00a0\u2003", login.VerdictInvalid, login.ReasonRequired},
		{"valid_nbsp_padded", "\u00a0user@example.com\ufeff", login.VerdictValid, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := login.ValidateIdentifier(tt.input)
			assert.Equal(t, tt.want, result.Verdict)
			assert.Equal(t, tt.reason, result.Reason)
			assert.Equal(t, tt.want == login.VerdictInvalid, result.Blocking())
		})
	}
}

/*
TestValidateSecret covers required, length and the non-blocking weak warning.
*/
func TestValidateSecret(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     login.Verdict
		reason   login.Reason
		strength login.Strength
	}{
		{"empty", "", login.VerdictInvalid, login.ReasonRequired, ""},
		{"too_short", "abc12", login.VerdictInvalid, login.ReasonTooShort, ""},
		{"too_short_multibyte", "ñññññ", login.VerdictInvalid, login.ReasonTooShort, ""},
		{"too_short_astral", "😀😀😀", login.VerdictInvalid, login.ReasonTooShort, ""},
		{"astral_at_minimum", "😀😀😀😀😀😀", login.VerdictWarning, login.ReasonWeak, login.StrengthWeak},
		{"whitespace_counts", "      ", login.VerdictWarning, login.ReasonWeak, login.StrengthWeak},
		{"weak_fixture", "demo123", login.VerdictWarning, login.ReasonWeak, login.StrengthWeak},
		{"medium_fixture", "password123", login.VerdictValid, "", login.StrengthMedium},
		{"strong", "Passw0rd!", login.VerdictValid, "", login.StrengthStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := login.ValidateSecret(tt.input)
			assert.Equal(t, tt.want, result.Verdict)
			assert.Equal(t, tt.reason, result.Reason)
			assert.Equal(t, tt.strength, result.Strength)
		})
	}
}

/*
TestValidateSecret_WarningNeverBlocks holds for every secret of length >= 6
meeting fewer than 3 strength checks.
*/
func TestValidateSecret_WarningNeverBlocks(t *testing.T) {
	for _, secret := range []string{"aaaaaa", "AAAAAA", "111111", "!!!!!!", "aaaaa1", "aaaaaaaa"} {
		result := login.ValidateSecret(secret)

		assert.LessOrEqual(t, login.SecretStrength(secret), 2, secret)
		assert.Equal(t, login.VerdictWarning, result.Verdict, secret)
		assert.False(t, result.Blocking(), secret)
	}
}

/*
TestSecretStrength scores one point per satisfied check.
*/
func TestSecretStrength(t *testing.T) {
	tests := []struct {
		input string
		score int
	}{
		{"", 0},
		{"abcdef", 1},
		{"abcdefgh", 2},
		{"Abcdefgh", 3},
		{"Abcdefg1", 4},
		{"Abcdef1!", 5},
		{"ÄÖÜäöü", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.score, login.SecretStrength(tt.input), tt.input)
	}

	assert.Equal(t, login.StrengthWeak, login.StrengthOf(0))
	assert.Equal(t, login.StrengthWeak, login.StrengthOf(2))
	assert.Equal(t, login.StrengthMedium, login.StrengthOf(3))
	assert.Equal(t, login.StrengthMedium, login.StrengthOf(4))
	assert.Equal(t, login.StrengthStrong, login.StrengthOf(5))
}

/*
TestFieldResult_MessageKey maps reasons to the per-field catalog entries.
*/
func TestFieldResult_MessageKey(t *testing.T) {
	assert.Equal(t, i18n.IdentifierRequired, login.ValidateIdentifier("").MessageKey(login.FieldIdentifier))
	assert.Equal(t, i18n.SecretRequired, login.ValidateSecret("").MessageKey(login.FieldSecret))
	assert.Equal(t, i18n.IdentifierMalformed, login.ValidateIdentifier("x").MessageKey(login.FieldIdentifier))
	assert.Equal(t, i18n.SecretTooShort, login.ValidateSecret("x").MessageKey(login.FieldSecret))
	assert.Equal(t, i18n.SecretWeak, login.ValidateSecret("demo123").MessageKey(login.FieldSecret))
	assert.Empty(t, login.ValidateSecret("password123").MessageKey(login.FieldSecret))
}

/*
TestParsePlatform falls through to Twitter for unknown providers.
*/
func TestParsePlatform(t *testing.T) {
	assert.Equal(t, login.PlatformGoogle, login.ParsePlatform("Google"))
	assert.Equal(t, login.PlatformFacebook, login.ParsePlatform(" facebook "))
	assert.Equal(t, login.PlatformTwitter, login.ParsePlatform("twitter"))
	assert.Equal(t, login.PlatformTwitter, login.ParsePlatform("github"))
	assert.Equal(t, "Google", login.PlatformGoogle.Title())
}
