package util

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func String2Uint(s string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// String2Int is lenient about decimal guide numbers such as "7.1" and keeps the integer part.
func String2Int(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".-"); i > 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// RandString draws n letters from crypto/rand; it backs the generated api key.
func RandString(n int) string {
	b := make([]byte, n)
	limit := big.NewInt(int64(len(letters)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(err)
		}
		b[i] = letters[idx.Int64()]
	}
	return string(b)
}

// ParseBool accepts the spellings the settings UI posts.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on", "yes":
		return true
	}
	return false
}
