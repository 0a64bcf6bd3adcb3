package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOriginHost(t *testing.T) {
	assert.Equal(t, "app.wellspring.io", extractOriginHost("https://app.wellspring.io"))
	assert.Equal(t, "localhost:3000", extractOriginHost("http://localhost:3000"))
	assert.Equal(t, "not a url", extractOriginHost("not a url"))
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("app.wellspring.io", "app.wellspring.io"))
	assert.True(t, matchOriginPattern("*.wellspring.io", "app.wellspring.io"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:3000"))

	assert.False(t, matchOriginPattern("*.wellspring.io", "wellspring.evil.com"))
	assert.False(t, matchOriginPattern("app.wellspring.io", "api.wellspring.io"))
}
