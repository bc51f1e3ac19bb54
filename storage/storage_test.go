package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectNameKeepsExtension(t *testing.T) {
	assert.True(t, strings.HasSuffix(ObjectName("photo.JPG"), ".jpg"))
	assert.True(t, strings.HasSuffix(ObjectName("archive.tar.png"), ".png"))
	assert.False(t, strings.Contains(ObjectName("noext"), "."))
}

func TestObjectNameIsCollisionResistant(t *testing.T) {
	// Identical input twice still yields two distinct storage names; the
	// store is deliberately not content-addressed.
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := ObjectName("same.jpg")
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}
