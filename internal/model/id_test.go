package model

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixedIDShape(t *testing.T) {
	cases := map[string]func() string{
		"USER": NewUserID,
		"REG":  NewRegistrationID,
		"EVT":  NewEventID,
		"AST":  NewAssetID,
		"RES":  NewResultID,
	}
	for prefix, gen := range cases {
		id := gen()
		assert.Regexp(t, regexp.MustCompile("^"+prefix+`\d{1,7}$`), id)
	}
}

func TestPrefixedIDVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[NewRegistrationID()] = true
	}
	// Random UUID-derived digits make collisions across 100 draws
	// overwhelmingly unlikely.
	assert.Greater(t, len(seen), 95)
}
