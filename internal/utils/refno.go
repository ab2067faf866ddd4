package utils

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewRefNo builds a human-readable reference number such as
// BKG-MB3K91ZQ-7Q1A: prefix, epoch millis in base36, 4 random chars,
// all uppercase. Not crypto grade; a duplicate trips the unique index
// and the caller retries.
func NewRefNo(prefix string) string {
	return NewRefNoWith(prefix, RandSuffix)
}

// NewRefNoWith accepts the suffix source so tests can force collisions.
func NewRefNoWith(prefix string, suffix func(n int) string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return prefix + "-" + ts + "-" + strings.ToUpper(suffix(4))
}

// RandSuffix returns n random alphanumeric characters.
func RandSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = refAlphabet[rand.Intn(len(refAlphabet))]
	}
	return string(b)
}
