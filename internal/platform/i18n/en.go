// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

var enUS = map[Key]string{
	// ===== Fields =====
	IdentifierRequired:  "Email address is required",
	IdentifierMalformed: "Please enter a valid email address",
	SecretRequired:      "Password is required",
	SecretTooShort:      "Password must be at least 6 characters",
	SecretWeak:          "Consider using a stronger password",

	// ===== Notifications =====
	MsgFixErrors:      "Please fix the errors before submitting",
	MsgLoginSuccess:   "Login successful! Redirecting to dashboard...",
	MsgSocialRedirect: "Redirecting to {0} authentication...",
	MsgResetNeedEmail: "Please enter a valid email address to reset your password",
	MsgResetSent:      "Password reset instructions sent to {0}",
	MsgSignupRedirect: "Redirecting to signup page...",

	// ===== Errors =====
	ErrAccountNotFound:    "No account found with this email address",
	ErrInvalidCredentials: "Invalid password. Please try again.",
	ErrAccountDisabled:    "This account has been deactivated",
	ErrUnexpected:         "Something went wrong. Please try again.",

	// ===== Labels =====
	LabelShowPassword: "Show password",
	LabelHidePassword: "Hide password",
	LabelSignIn:       "Sign In",
	LabelSigningIn:    "Signing In...",
}
