package generator

import (
	"crypto/rand"
	"encoding/base64"
)

// MessageIDLength is the length of outbox message identifiers.
const MessageIDLength = 16

// GenerateID returns a URL-safe random identifier of exactly the given length.
func GenerateID(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}

	// base64 yields 4 characters per 3 bytes
	b := make([]byte, (length*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	id := base64.RawURLEncoding.EncodeToString(b)
	if len(id) > length {
		id = id[:length]
	}

	return id, nil
}

// MessageID returns a fresh outbox message identifier.
func MessageID() (string, error) {
	return GenerateID(MessageIDLength)
}
