package util

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost for stored account passwords; raising it only affects
// hashes created after the change, existing ones still verify.
const passwordHashCost = 12

// HashPassword hashes a plain text password for storage on a user record
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
