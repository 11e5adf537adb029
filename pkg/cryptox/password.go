package cryptox

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used for all credential hashes.
// Fixed so that hashes are comparable across deployments; bumping it only
// affects newly written hashes.
const PasswordCost = 10

// HashPassword generates a salted bcrypt hash of the given password.
// The salt is random per call, so two hashes of the same password differ
// while both remaining verifiable.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash. A malformed hash is treated as a verification failure, not
// an error: callers only ever need the yes/no answer, and mapping storage
// corruption onto "wrong password" keeps the failure path uniform.
func CheckPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
