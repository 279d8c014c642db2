package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// identityRegex matches catalog identities and aliases: lowercase letters,
// digits, dots, underscores and hyphens, starting with a letter or digit.
var identityRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateIdentity validates a catalog identity or alias.
//
// The rules keep identities usable as CLI tokens:
//   - No empty names
//   - No control characters or whitespace
//   - Must not start with "-" (would be parsed as a flag)
//   - No commas (flag values are comma-separated)
//   - Maximum length of 64 characters
func ValidateIdentity(name string) error {
	if name == "" {
		return New(ErrCodeInvalidID, "identity cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidID, "identity too long (max 64 characters): %q", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "identity contains whitespace or control characters: %q", name)
		}
	}

	if strings.HasPrefix(name, "-") {
		return New(ErrCodeInvalidID, "identity cannot start with '-': %q", name)
	}

	if strings.Contains(name, ",") {
		return New(ErrCodeInvalidID, "identity cannot contain ',': %q", name)
	}

	if !identityRegex.MatchString(name) {
		return New(ErrCodeInvalidID, "invalid identity: %q", name)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL uses https, since downloads are executed with privilege.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use https scheme: %q", rawURL)
	}

	return nil
}
