package order

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewOrderNumber returns a human facing, time sortable order reference such as
// ORD-01JABCDXYZ... The ULID encodes now in its first ten characters followed
// by 80 random bits.
func NewOrderNumber(now time.Time) string {
	return "ORD-" + ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
}
