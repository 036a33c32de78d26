// Package urlnorm checks and canonicalizes link targets.
package urlnorm

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"linkgate/internal/entities"
)

var validate = validator.New()

// Validate reports whether raw is an absolute URL with a scheme and a host
func Validate(raw string) bool {
	if err := validate.Var(raw, "required,url"); err != nil {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Normalize returns the canonical https form of raw. A missing scheme is
// taken to mean https; any other scheme is replaced with https.
//
//	example.com         -> https://example.com/
//	http://example.com  -> https://example.com/
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", entities.ErrInvalidURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrInvalidURL, err)
	}
	if u.Host == "" || u.Hostname() == "" || strings.ContainsAny(u.Host, " \t") {
		return "", entities.ErrInvalidURL
	}

	u.Scheme = "https"
	if u.Path == "" {
		u.Path = "/"
	}

	normalized := u.String()
	if !Validate(normalized) {
		return "", entities.ErrInvalidURL
	}
	return normalized, nil
}
