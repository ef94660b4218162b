package util

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted one-way digest. Two hashes of the
// same password are not byte-identical.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// ComparePassword runs in constant time with respect to mismatch
// position. A wrong password returns an error, never a panic.
func ComparePassword(password, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}
