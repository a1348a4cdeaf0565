// Package contact holds the phone number value object and the per-contact record.
package contact

import (
	"errors"
	"fmt"
)

// PhoneDigits is the exact number of digits a phone number must have.
const PhoneDigits = 10

// Sentinel errors for caller-checkable conditions.
var (
	ErrInvalidPhoneFormat = errors.New("contact: invalid phone format")
	ErrDuplicatePhone     = errors.New("contact: phone already in list")
	ErrPhoneNotFound      = errors.New("contact: phone not found")
)

// PhoneNumber is a validated string of exactly PhoneDigits ASCII digits.
// The zero value is not a valid number; use NewPhoneNumber.
type PhoneNumber struct {
	value string
}

// NewPhoneNumber validates raw and returns it as a PhoneNumber.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	if !validPhone(raw) {
		return PhoneNumber{}, fmt.Errorf("%w: %q (want %d digits)", ErrInvalidPhoneFormat, raw, PhoneDigits)
	}
	return PhoneNumber{value: raw}, nil
}

// MustPhoneNumber is like NewPhoneNumber but panics on invalid input.
func MustPhoneNumber(raw string) PhoneNumber {
	p, err := NewPhoneNumber(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the digits as given at construction.
func (p PhoneNumber) String() string {
	return p.value
}

// Equal reports whether both numbers hold the same digits.
func (p PhoneNumber) Equal(other PhoneNumber) bool {
	return p.value == other.value
}

// validPhone checks length in bytes, so any multi-byte rune fails the digit check too.
func validPhone(s string) bool {
	if len(s) != PhoneDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
