package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRandomID generates a random hex ID of the given length
func GenerateRandomID(length int) string {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based ID
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}

// GenerateShareSlug generates a short lowercase slug for shareable links
func GenerateShareSlug(length int) string {
	result := make([]byte, length)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			result[i] = slugAlphabet[time.Now().UnixNano()%int64(len(slugAlphabet))]
			continue
		}
		result[i] = slugAlphabet[n.Int64()]
	}
	return string(result)
}

// CacheKeyHash hashes an input string into a stable cache key component
func CacheKeyHash(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:32]
}
