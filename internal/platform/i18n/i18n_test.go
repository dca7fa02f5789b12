// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/taibuivan/signin/internal/platform/i18n"
)

/*
TestMatch_AcceptLanguage negotiates common header values.
*/
func TestMatch_AcceptLanguage(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   language.Tag
	}{
		{"empty_header", "", language.English},
		{"english_region", "en-GB,en;q=0.9", language.English},
		{"vietnamese", "vi-VN,vi;q=0.9,en;q=0.5", language.Vietnamese},
		{"unsupported", "ja-JP", language.English},
		{"garbage", ";;;=", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.Match(tt.header, language.English))
		})
	}
}

/*
TestT_Fallbacks checks formatting and the key fallback chain.
*/
func TestT_Fallbacks(t *testing.T) {
	assert.Equal(t, "Password reset instructions sent to a@b.co",
		i18n.T(language.English, i18n.MsgResetSent, "a@b.co"))

	assert.Equal(t, "Tài khoản này đã bị vô hiệu hóa",
		i18n.T(language.Vietnamese, i18n.ErrAccountDisabled))

	assert.Equal(t, "Đang chuyển hướng đến trang xác thực Google...",
		i18n.T(language.Vietnamese, i18n.MsgSocialRedirect, "Google"))

	// Regional variants use their base catalog
	assert.Equal(t, "Vui lòng nhập mật khẩu",
		i18n.T(language.MustParse("vi-VN"), i18n.SecretRequired))

	// Unknown language uses the English catalog
	assert.Equal(t, "Password is required", i18n.T(language.German, i18n.SecretRequired))

	// Unknown key surfaces itself
	assert.Equal(t, "msg.nope", i18n.T(language.English, i18n.Key("msg.nope")))
}

/*
TestT_CatalogsComplete requires every key to be translated in every shipped language.
*/
func TestT_CatalogsComplete(t *testing.T) {
	keys := []i18n.Key{
		i18n.IdentifierRequired, i18n.IdentifierMalformed, i18n.SecretRequired,
		i18n.SecretTooShort, i18n.SecretWeak, i18n.MsgFixErrors, i18n.MsgLoginSuccess,
		i18n.MsgResetNeedEmail, i18n.MsgSignupRedirect, i18n.ErrAccountNotFound,
		i18n.ErrInvalidCredentials, i18n.ErrAccountDisabled, i18n.ErrUnexpected,
		i18n.LabelShowPassword, i18n.LabelHidePassword, i18n.LabelSignIn, i18n.LabelSigningIn,
	}

	for _, tag := range i18n.Supported {
		for _, key := range keys {
			assert.NotEqual(t, string(key), i18n.T(tag, key), "%s missing %s", tag, key)
		}
		assert.NotContains(t, i18n.T(tag, i18n.MsgResetSent, "a@b.co"), "{0}")
		assert.NotContains(t, i18n.T(tag, i18n.MsgSocialRedirect, "Twitter"), "{0}")
	}

	assert.NotEqual(t,
		i18n.T(language.English, i18n.MsgLoginSuccess),
		i18n.T(language.Vietnamese, i18n.MsgLoginSuccess))
}

/*
TestParse_ConfiguredDefault maps configuration names onto supported tags.
*/
func TestParse_ConfiguredDefault(t *testing.T) {
	assert.Equal(t, language.Vietnamese, i18n.Parse("vi"))
	assert.Equal(t, language.English, i18n.Parse("en-US"))
	assert.Equal(t, language.English, i18n.Parse("not a tag!"))
}
