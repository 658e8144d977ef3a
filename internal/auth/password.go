// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package auth

import "golang.org/x/crypto/bcrypt"

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
