package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// GenerateAccountNumber generates an account number made of the given
// prefix plus three groups of four random digits, e.g. "0001-4821-0937-5512".
func GenerateAccountNumber(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("account number prefix is empty")
	}

	groups := make([]string, 0, 4)
	groups = append(groups, prefix)
	for g := 0; g < 3; g++ {
		digits := make([]byte, 4)
		if _, err := rand.Read(digits); err != nil {
			return "", fmt.Errorf("failed to generate random digits: %w", err)
		}

		var builder strings.Builder
		for _, b := range digits {
			builder.WriteByte(b%10 + '0')
		}
		groups = append(groups, builder.String())
	}

	return strings.Join(groups, "-"), nil
}
