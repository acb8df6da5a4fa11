package pkg

import (
	"crypto/rand"
	"encoding/base64"
)

const gameIDLength = 12

// GenerateGameID - generates a new unique game ID.
func GenerateGameID() string {
	b := make([]byte, gameIDLength)
	if _, err := rand.Read(b); err != nil {
		return "error-generating-game-id"
	}

	return base64.RawURLEncoding.EncodeToString(b)
}
