package session

import (
	"crypto/rand"
	"math/big"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const tokenLength = 32

// NewToken returns an opaque session token. Tokens are resolved against
// server-side storage, so unforgeability rests on the entropy here.
func NewToken() (string, error) {
	result := make([]byte, tokenLength)

	for i := 0; i < tokenLength; i++ {
		randomIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		result[i] = alphabet[randomIndex.Int64()]
	}

	return string(result), nil
}
