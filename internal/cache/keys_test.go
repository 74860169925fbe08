package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	t.Run("WithoutParams", func(t *testing.T) {
		key := GenerateCacheKey("generation", "quiz", "abc123")
		assert.Equal(t, "navprep:generation:quiz:abc123", key)
	})

	t.Run("WithParams", func(t *testing.T) {
		key := GenerateCacheKey("generation", "quiz", "abc123", "p1", "p2")
		assert.Equal(t, "navprep:generation:quiz:abc123:p1_p2", key)
	})
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("quiz", "Title", "Desc", "some study material")

	assert.Len(t, fp, 32)
	assert.Equal(t, fp, Fingerprint("quiz", "Title", "Desc", "some study material"))
}

func TestFingerprintDistinguishesFields(t *testing.T) {
	base := Fingerprint("quiz", "Title", "Desc", "material")

	assert.NotEqual(t, base, Fingerprint("flashcards", "Title", "Desc", "material"))
	assert.NotEqual(t, base, Fingerprint("quiz", "Other", "Desc", "material"))
	assert.NotEqual(t, base, Fingerprint("quiz", "Title", "Other", "material"))
	assert.NotEqual(t, base, Fingerprint("quiz", "Title", "Desc", "other material"))

	// Field boundaries matter: moving characters across a boundary must
	// change the hash.
	assert.NotEqual(t, Fingerprint("quiz", "ab", "c", "m"), Fingerprint("quiz", "a", "bc", "m"))
}

func TestFingerprintIgnoresMaterialPastPrefix(t *testing.T) {
	prefix := strings.Repeat("x", 100)

	a := Fingerprint("quiz", "T", "D", prefix+"tail one")
	b := Fingerprint("quiz", "T", "D", prefix+"completely different tail")

	assert.Equal(t, a, b)

	// Differences within the prefix still count.
	c := Fingerprint("quiz", "T", "D", "y"+prefix[1:])
	assert.NotEqual(t, a, c)
}
