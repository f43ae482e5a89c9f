package types

import "fmt"

// PhoneLength is the number of digits in a valid phone number.
const PhoneLength = 10

// Phone is a validated phone number. The only way to obtain a non-zero
// Phone is NewPhone, so a Phone held by a Record always satisfies
// ValidatePhone.
type Phone struct {
	value string
}

// ValidatePhone reports whether raw is exactly PhoneLength ASCII digits.
// The same rule applies to new numbers and to edits of existing ones.
func ValidatePhone(raw string) bool {
	if len(raw) != PhoneLength {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

// NewPhone validates raw and returns it as a Phone.
// Returns an error wrapping ErrInvalidPhone if raw is not valid.
func NewPhone(raw string) (Phone, error) {
	if !ValidatePhone(raw) {
		return Phone{}, fmt.Errorf("%q: %w", raw, ErrInvalidPhone)
	}
	return Phone{value: raw}, nil
}

// String returns the digits of the phone number.
func (p Phone) String() string {
	return p.value
}
