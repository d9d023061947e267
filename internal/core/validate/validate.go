// Package validate provides the field checks shared by items, courses and the
// interactive forms.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hay-kot/criterio"
)

// ErrRequired is returned for blank values.
var ErrRequired = errors.New("is required")

// Required rejects values that are empty after trimming whitespace.
func Required(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// RequiredField runs Required under field for use with criterio.ValidateStruct.
func RequiredField(field, s string) error {
	return criterio.Run(field, s, Required)
}

// NonNegative rejects negative numbers.
func NonNegative(n int) error {
	if n < 0 {
		return fmt.Errorf("must not be negative, got %d", n)
	}
	return nil
}

// Minutes accepts a blank string or a non-negative whole number of minutes.
func Minutes(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("expected a whole number of minutes, got %q", s)
	}
	return NonNegative(n)
}
