package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a one-way bcrypt hash from a plaintext
// password. The salt is generated per call, so hashing the same
// plaintext twice yields different hashes; only VerifyPassword can
// check a candidate against a stored hash.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
func VerifyPassword(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
