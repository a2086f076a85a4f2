package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// OrderCodeAlphabet leaves out characters that are easy to misread (0/O, 1/I/L)
	OrderCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	// OrderCodeLength is the number of characters in an order code
	OrderCodeLength = 6
)

// NewOrderCode returns a random short order code
func NewOrderCode() (string, error) {
	max := big.NewInt(int64(len(OrderCodeAlphabet)))
	code := make([]byte, OrderCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate order code: %w", err)
		}
		code[i] = OrderCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
