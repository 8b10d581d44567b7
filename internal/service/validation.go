package service

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	minUsernameLength = 5
	maxUsernameLength = 9
	minPasswordLength = 6
)

var validate = validator.New()

// NormalizeURL trims the input and adds https:// when it does not already start with http:// or https://.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("URL cannot be empty")
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", invalid("Invalid URL format")
	}
	return raw, nil
}

func ValidateUsername(username string) error {
	if username == "" {
		return invalid("Username cannot be empty")
	}
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return invalid("Username must be between 5 to 9 characters long")
	}
	if err := validate.Var(username, "alphanum"); err != nil {
		return invalid("Username must contain only alphanumeric characters")
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return invalid("Password cannot be empty")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return invalid("Password must be at least 6 characters long")
	}
	return nil
}
