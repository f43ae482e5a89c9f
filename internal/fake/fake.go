// Package fake generates random contacts for demos and manual testing.
package fake

import (
	"errors"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// maxAttempts bounds how many faker phones are tried before giving up.
const maxAttempts = 32

// ErrNoPhone is returned when the faker never produced enough digits.
var ErrNoPhone = errors.New("fake: could not generate a 10-digit phone number")

// Generator produces random contact names and phone numbers.
type Generator struct {
	name  func() string
	phone func() string
}

// NewGenerator returns a Generator seeded with seed. A zero seed picks a
// random one.
func NewGenerator(seed uint64) *Generator {
	f := gofakeit.New(seed)
	return &Generator{name: f.Name, phone: f.Phone}
}

// Generate returns a random name and a phone string of exactly
// types.PhoneLength digits.
func (g *Generator) Generate() (name, phone string, err error) {
	for range maxAttempts {
		digits := digitsOnly(g.phone())
		if len(digits) >= types.PhoneLength {
			return g.name(), digits[:types.PhoneLength], nil
		}
	}
	return "", "", ErrNoPhone
}

// digitsOnly strips every non-digit from s.
func digitsOnly(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
