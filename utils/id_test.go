package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEntityIDFormat(t *testing.T) {
	for _, prefix := range []string{"announcement", "blog", "admin", "home-page-gallery"} {
		id := GenerateEntityID(prefix)
		assert.Regexp(t, "^"+prefix+`-[a-z0-9]{6}$`, id)
	}
}

func TestGenerateEntityIDIsRandomEnough(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := GenerateEntityID("student")
		assert.False(t, seen[id], "id %s muncul dua kali dalam 1000 generate", id)
		seen[id] = true
	}
}
