package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "navprep"

	// fingerprintMaterialPrefix bounds how much material feeds the
	// fingerprint; requests differing only past this prefix share a key.
	fingerprintMaterialPrefix = 100
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// Fingerprint derives a truncated content hash identifying a generation
// request. Only the first 100 characters of the material participate.
func Fingerprint(contentType, title, description, material string) string {
	if len(material) > fingerprintMaterialPrefix {
		material = material[:fingerprintMaterialPrefix]
	}
	h := sha256.New()
	h.Write([]byte(contentType))
	h.Write([]byte{0})
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(description))
	h.Write([]byte{0})
	h.Write([]byte(material))
	return hex.EncodeToString(h.Sum(nil))[:32]
}
