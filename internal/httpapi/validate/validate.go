package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// "me" is reserved for the self-service profile endpoint.
const reservedUsername = "me"

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

var (
	ErrUsernameReserved = errors.New(`username cannot be "me"`)
	ErrUsernameInvalid  = errors.New("username may only contain letters, digits and @/./+/-/_")
	ErrUsernameLength   = errors.New("username must be between 1 and 150 characters")
)

// Username checks a username against the reserved word, charset and length rules.
func Username(value string) error {
	if len(value) == 0 || len(value) > 150 {
		return ErrUsernameLength
	}
	if strings.EqualFold(value, reservedUsername) {
		return ErrUsernameReserved
	}
	if !usernameRe.MatchString(value) {
		return ErrUsernameInvalid
	}
	return nil
}

// ErrSlugInvalid is returned for slugs outside the URL-safe charset.
var ErrSlugInvalid = errors.New("slug may only contain letters, digits, hyphens and underscores")

// Slug checks a category/genre slug for URL safety.
func Slug(value string) error {
	if !slugRe.MatchString(value) {
		return ErrSlugInvalid
	}
	return nil
}

// ErrYearInFuture is returned for release years past the current calendar year.
var ErrYearInFuture = errors.New("release year is in the future")

// Year rejects release years in the future. There is no lower bound.
func Year(value int) error {
	if current := time.Now().Year(); value > current {
		return fmt.Errorf("%w: %d exceeds %d", ErrYearInFuture, value, current)
	}
	return nil
}
