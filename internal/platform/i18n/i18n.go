// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package i18n holds the user-facing message catalogs of the sign-in page.

Every string a user can read (field annotations, notifications, button labels)
is looked up here by [Key], so the controller never formats raw error text.

Negotiation:

  - The Accept-Language header is matched against [Supported] with x/text/language.
  - Unknown languages fall back to the configured default.
  - A key missing from a catalog falls back to English, then to the key itself.

Catalogs are registered on a go-playground universal translator; messages use
positional "{0}" placeholders.
*/
package i18n

import (
	"fmt"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/vi"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// Key identifies a catalogued message.
type Key string

// # Field Annotations

const (
	IdentifierRequired  Key = "field.identifier.required"
	IdentifierMalformed Key = "field.identifier.malformed"
	SecretRequired      Key = "field.secret.required"
	SecretTooShort      Key = "field.secret.too_short"
	SecretWeak          Key = "field.secret.weak"
)

// # Notifications

const (
	MsgFixErrors      Key = "msg.fix_errors"
	MsgLoginSuccess   Key = "msg.login_success"
	MsgSocialRedirect Key = "msg.social_redirect"
	MsgResetNeedEmail Key = "msg.reset_need_email"
	MsgResetSent      Key = "msg.reset_sent"
	MsgSignupRedirect Key = "msg.signup_redirect"
)

// # Authentication Failures

const (
	ErrAccountNotFound    Key = "error.account_not_found"
	ErrInvalidCredentials Key = "error.invalid_credentials"
	ErrAccountDisabled    Key = "error.account_disabled"
	ErrUnexpected         Key = "error.unexpected"
)

// # Labels

const (
	LabelShowPassword Key = "label.show_password"
	LabelHidePassword Key = "label.hide_password"
	LabelSignIn       Key = "label.sign_in"
	LabelSigningIn    Key = "label.signing_in"
)

// Supported lists the languages we ship catalogs for. The first entry is the
// ultimate fallback.
var Supported = []language.Tag{
	language.English,
	language.Vietnamese,
}

var (
	matcher = language.NewMatcher(Supported)

	universal = newUniversalTranslator()
)

// newUniversalTranslator registers every shipped catalog. A catalog that fails
// to register is a programming error.
func newUniversalTranslator() *ut.UniversalTranslator {
	english := en.New()
	universal := ut.New(english, english, vi.New())

	catalogs := map[string]map[Key]string{
		"en": enUS,
		"vi": viVN,
	}

	for locale, messages := range catalogs {
		if err := register(universal, locale, messages); err != nil {
			panic(err)
		}
	}

	return universal
}

// register adds messages to the translator of locale.
func register(universal *ut.UniversalTranslator, locale string, messages map[Key]string) error {
	translator, found := universal.GetTranslator(locale)
	if !found {
		return fmt.Errorf("i18n: no translator for locale %q", locale)
	}

	for key, text := range messages {
		if err := translator.Add(string(key), text, true); err != nil {
			return fmt.Errorf("i18n: register %s/%s: %w", locale, key, err)
		}
	}

	return nil
}

// Match negotiates an Accept-Language header value against [Supported].
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}

	return Supported[index]
}

// Parse turns a configured language name into a supported tag, defaulting to English.
func Parse(name string) language.Tag {
	tag, err := language.Parse(name)
	if err != nil {
		return language.English
	}
	return Match(tag.String(), language.English)
}

// T translates key for the given language, filling "{N}" placeholders from params.
func T(tag language.Tag, key Key, params ...string) string {
	base, _ := tag.Base()

	if translator, found := universal.GetTranslator(base.String()); found {
		if message, err := translator.T(string(key), params...); err == nil {
			return message
		}
	}

	if message, err := universal.GetFallback().T(string(key), params...); err == nil {
		return message
	}

	// Surface the key so missing translations are easy to spot.
	return string(key)
}
