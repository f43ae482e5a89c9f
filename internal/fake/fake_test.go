package fake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func TestGenerateProducesValidPhones(t *testing.T) {
	g := NewGenerator(42)
	for range 100 {
		name, phone, err := g.Generate()
		require.NoError(t, err)
		assert.NotEmpty(t, name)
		assert.True(t, types.ValidatePhone(phone), phone)

		r := types.NewRecord(name)
		require.NoError(t, r.AddPhone(phone))
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := NewGenerator(7)
	b := NewGenerator(7)
	for range 10 {
		n1, p1, err := a.Generate()
		require.NoError(t, err)
		n2, p2, err := b.Generate()
		require.NoError(t, err)
		assert.Equal(t, n1, n2)
		assert.Equal(t, p1, p2)
	}
}

func TestGenerateStripsAndTruncates(t *testing.T) {
	phones := []string{"+38 (050)", "+38 (050) 123-45-67 ext. 89"}
	calls := 0
	g := &Generator{
		name: func() string { return "Olena Shevchenko" },
		phone: func() string {
			p := phones[calls]
			calls++
			return p
		},
	}

	name, phone, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "Olena Shevchenko", name)
	assert.Equal(t, "3805012345", phone)
	assert.Equal(t, 2, calls, "short numbers are retried")
}

func TestGenerateGivesUp(t *testing.T) {
	g := &Generator{
		name:  func() string { return "Nobody" },
		phone: func() string { return "12-34" },
	}
	_, _, err := g.Generate()
	require.ErrorIs(t, err, ErrNoPhone)
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "0501234567", digitsOnly("(050) 123-45-67"))
	assert.Equal(t, "", digitsOnly("no digits"))
}
