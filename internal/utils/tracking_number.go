package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

// trackingAlphabet excludes 0/O/1/I/L so tracking numbers survive being read
// over the phone.
const trackingAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const trackingSuffixLength = 6

// GenerateTrackingNumber produces a shipment tracking number of the form
// TRG-20250114-A7K2MQ. The random suffix makes collisions vanishingly rare;
// the database unique constraint is the actual guarantee.
func GenerateTrackingNumber(now time.Time) (string, error) {
	buf := make([]byte, trackingSuffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = trackingAlphabet[int(b)%len(trackingAlphabet)]
	}
	return fmt.Sprintf("TRG-%s-%s", now.Format("20060102"), string(buf)), nil
}
