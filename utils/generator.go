package utils

import (
	"crypto/rand"
	"encoding/hex"
)

const roomSlugBytes = 8

// GenerateRoomSlug returns a random, URL-safe meeting room identifier.
func GenerateRoomSlug() (string, error) {
	b := make([]byte, roomSlugBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
