package credentials

import (
	"crypto/rand"
	"math/big"
)

// GenerateChildLogin generates a random 6-digit numeric login ID for a
// child account. The leading digit is never zero so the ID round-trips
// through clients that treat it as a number.
func GenerateChildLogin() (string, error) {
	digits := make([]byte, 6)

	first, err := rand.Int(rand.Reader, big.NewInt(9))
	if err != nil {
		return "", err
	}
	digits[0] = byte('1' + first.Int64())

	for i := 1; i < len(digits); i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}

// GenerateChildPassword generates a random 4-character password using letters and numbers
func GenerateChildPassword() (string, error) {
	chars := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	password := make([]byte, 4)

	for i := 0; i < 4; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		password[i] = chars[num.Int64()]
	}

	return string(password), nil
}
