package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor used for password hashing.
const bcryptCost = 10

// HashPassword derives a bcrypt hash from a plaintext password.
//
// The resulting hash embeds its own salt and cost factor, so no additional
// state needs to be stored next to it.
//
// Parameters:
//
//	password - plaintext password to be hashed
//
// Returns:
//
//	string - bcrypt hash in its standard encoded form
//	error  - non-nil if hashing fails (e.g. password exceeds 72 bytes)
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash. A mismatch is not an error condition: the function simply
// returns false.
func CheckPassword(password, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}
