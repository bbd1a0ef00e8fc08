package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateUniqueID creates a secure random hex string from length bytes.
func GenerateUniqueID(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateWalletID mints a wallet id of the form QP + 8 uppercase hex digits.
func GenerateWalletID() (string, error) {
	id, err := GenerateUniqueID(4)
	if err != nil {
		return "", err
	}
	return "QP" + strings.ToUpper(id), nil
}
