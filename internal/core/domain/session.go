package domain

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

type SessionState string

const (
	SessionUnknown         SessionState = "unknown"
	SessionAuthenticated   SessionState = "authenticated"
	SessionUnauthenticated SessionState = "unauthenticated"
)

// Persisted marker keys.
const (
	MarkerAuthenticated = "isAuthenticated"
	MarkerUser          = "user"
	MarkerLanguage      = "language"
)

// SessionUser is the profile blob returned by login. Raw keeps the exact
// payload so it can be persisted unchanged.
type SessionUser struct {
	UserID   string          `json:"user_id"`
	Email    string          `json:"email"`
	Role     string          `json:"role"`
	FullName *string         `json:"full_name"`
	Raw      json.RawMessage `json:"-"`
}

func DecodeSessionUser(raw string) (*SessionUser, error) {
	var u SessionUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}
	u.Raw = json.RawMessage(raw)
	return &u, nil
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordReset is the web reset form; uid comes from the reset link.
type PasswordReset struct {
	UID             string `json:"uid"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

const MinPasswordLength = 6

func (r PasswordReset) Validate() error {
	if strings.TrimSpace(r.UID) == "" {
		return NewValidationError("Invalid or missing reset link. Please request a new password reset.")
	}
	if utf8.RuneCountInString(r.NewPassword) < MinPasswordLength {
		return NewValidationError("Password must be at least 6 characters")
	}
	if r.NewPassword != r.ConfirmPassword {
		return NewValidationError("Password and confirm password do not match")
	}
	return nil
}

type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

// ParseLocale falls back to English for anything unsupported.
func ParseLocale(s string) Locale {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleArabic:
		return LocaleArabic
	default:
		return LocaleEnglish
	}
}

func (l Locale) Supported() bool {
	return l == LocaleEnglish || l == LocaleArabic
}

func (l Locale) Direction() string {
	if l == LocaleArabic {
		return "rtl"
	}
	return "ltr"
}
