// Package cryptox derives and verifies credential hashes.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltLength = 16
	keyLength  = 32
)

// NewSalt returns a fresh random salt for HashSecret.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltLength)
}

// HashSecret derives an Argon2id key from the secret and salt.
func HashSecret(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, keyLength)
}

// VerifySecret reports whether secret hashes to want under salt.
// The comparison runs in constant time.
func VerifySecret(secret, salt, want []byte) bool {
	got := HashSecret(secret, salt)
	defer common.WipeByteArray(got)
	return subtle.ConstantTimeCompare(got, want) == 1
}
