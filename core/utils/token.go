package utils

import "golang.org/x/crypto/bcrypt"

// HashToken hashes a response token for storage. The plaintext is returned
// to the joiner exactly once and never persisted.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CompareToken reports whether the presented token matches the stored hash.
func CompareToken(hash, token string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
