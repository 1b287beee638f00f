package validator

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// Patterns shared by the example forms. They are unanchored; Pattern adds anchors.
const (
	EmailPattern = `(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`
	PhonePattern = `\([0-9]{3}\) [0-9]{3}-[0-9]{4}`
)

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)
	areaCodeRegex    = regexp.MustCompile(`\d{3}`)
)

// WholeNumber accepts values that coerce to an integer. Non-numeric input
// is left to min/max rules.
func WholeNumber(v Value) error {
	n, ok := v.Float()
	if !ok {
		return nil
	}
	if n != math.Trunc(n) {
		return errors.New("must be a whole number")
	}
	return nil
}

// ValidURL accepts empty values and absolute URLs with a scheme and host.
func ValidURL(v Value) error {
	s := strings.TrimSpace(v.Text())
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return errors.New("must be a valid URL")
	}
	return nil
}

// SecureURL accepts empty values and URLs using the https scheme.
func SecureURL(v Value) error {
	s := strings.TrimSpace(v.Text())
	if s == "" || strings.HasPrefix(s, "https://") {
		return nil
	}
	return errors.New("must use HTTPS")
}

// AreaCode rejects phone numbers whose first three-digit group starts with 0.
func AreaCode(v Value) error {
	s := v.Text()
	if s == "" {
		return nil
	}
	if code := areaCodeRegex.FindString(s); strings.HasPrefix(code, "0") {
		return errors.New("area code cannot start with 0")
	}
	return nil
}

func ContainsUppercase(v Value) error {
	if !uppercaseRegex.MatchString(v.Text()) {
		return errors.New("must contain at least one uppercase letter")
	}
	return nil
}

func ContainsDigit(v Value) error {
	if !digitRegex.MatchString(v.Text()) {
		return errors.New("must contain at least one number")
	}
	return nil
}

func ContainsSpecialChar(v Value) error {
	if !specialCharRegex.MatchString(v.Text()) {
		return errors.New("must contain at least one special character")
	}
	return nil
}

// NotContaining rejects values containing substr, compared case-sensitively.
func NotContaining(substr string) Predicate {
	return func(v Value) error {
		if strings.Contains(v.Text(), substr) {
			return fmt.Errorf("must not contain %q", substr)
		}
		return nil
	}
}

// OneOf accepts empty values and values equal to one of options.
func OneOf(options ...string) Predicate {
	return func(v Value) error {
		s := v.Text()
		if s == "" || slices.Contains(options, s) {
			return nil
		}
		return fmt.Errorf("must be one of: %s", strings.Join(options, ", "))
	}
}

// SubsetOf accepts sets whose items are all in options.
func SubsetOf(options ...string) Predicate {
	return func(v Value) error {
		for _, item := range v.Items() {
			if !slices.Contains(options, item) {
				return fmt.Errorf("unknown option %q", item)
			}
		}
		return nil
	}
}
