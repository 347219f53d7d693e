package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted one-way digest of plain. A fresh salt is
// generated on every call, so two hashes of the same password differ.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored digest.
// A mismatch is a normal false, never an error.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
