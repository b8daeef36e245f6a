package orders

import (
	"crypto/rand"
	"time"
)

// NewOrderNumber returns ORD-YYYYMMDD-XXXXXX for the UTC date of now, where
// the suffix is six random base32 characters.
func NewOrderNumber(now time.Time) string {
	return "ORD-" + now.UTC().Format("20060102") + "-" + rand.Text()[:6]
}
