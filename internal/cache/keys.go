package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "quizforge"
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

// ContentKey is the key under which the assembled source text of a storage prefix is cached.
// Prefixes may contain spaces and colons, so they are hashed.
func ContentKey(bucket, prefix string) string {
	sum := sha256.Sum256([]byte(prefix))
	return GenerateCacheKey("storage", "content", bucket, hex.EncodeToString(sum[:]))
}
