package storage

import (
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageKey(t *testing.T) {
	key := storageKey("avatar.png")

	assert.True(t, strings.HasPrefix(key, "assets/"))
	assert.Equal(t, ".png", path.Ext(key))

	// Keys are unique per call.
	assert.NotEqual(t, key, storageKey("avatar.png"))
}

func TestStorageKeyWithoutExtension(t *testing.T) {
	key := storageKey("rawfile")
	assert.True(t, strings.HasPrefix(key, "assets/"))
	assert.Empty(t, path.Ext(key))
}
