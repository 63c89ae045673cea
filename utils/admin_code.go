// utils/admin_code.go
package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const adminCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AdminCodeLength is the length of generated admin codes
const AdminCodeLength = 8

// GenerateAdminCode creates a random 8-character alphanumeric admin code
func GenerateAdminCode() (string, error) {
	code := make([]byte, AdminCodeLength)
	max := big.NewInt(int64(len(adminCodeChars)))
	for i := range code {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = adminCodeChars[num.Int64()]
	}
	return string(code), nil
}

// HashAdminCode hashes an admin code for storage
func HashAdminCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckAdminCode compares a plaintext admin code against its stored hash
func CheckAdminCode(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
