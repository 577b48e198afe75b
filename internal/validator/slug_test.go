package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Pizza Juan":       "pizza-juan",
		"Café Ñandú":       "cafe-nandu",
		"  Sushi & Rolls  ": "sushi-rolls",
		"La 21":            "la-21",
		"!!!":              "",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestCountDigits(t *testing.T) {
	assert.Equal(t, 11, CountDigits("+56 9 1234-5678"))
	assert.Equal(t, 0, CountDigits("abc"))
}
