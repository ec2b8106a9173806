package interview

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a prefixed identifier such as "quote-1f3a9c2b84d0".
// Prefixes keep exported data and logs readable; the random part is a
// shortened UUID.
func NewID(prefix string) string {
	return prefix + "-" + shortID(12)
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}
