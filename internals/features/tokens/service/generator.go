// file: internals/features/tokens/service/generator.go
package service

import (
	"crypto/rand"
	"fmt"
)

const (
	TokenLength   = 21
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateToken returns a fixed-length random alphanumeric credential from a
// cryptographically-strong source. Rejection sampling keeps the distribution
// uniform over the alphabet. Collisions are left to the unique index on
// access_tokens.token (62^21 keyspace).
func GenerateToken() (string, error) {
	out := make([]byte, 0, TokenLength)
	buf := make([]byte, TokenLength*2)
	for len(out) < TokenLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}
		for _, b := range buf {
			// 248 = 62*4: largest multiple of len(alphabet) below 256
			if b >= 248 {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == TokenLength {
				break
			}
		}
	}
	return string(out), nil
}
