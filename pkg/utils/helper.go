package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateReceiptID creates a provider receipt reference with timestamp
// Format: RCPT-YYYYMMDD-HHMMSS-RANDOM
func GenerateReceiptID() string {
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("RCPT-%s-%s-%s", datePart, timePart, randomPart)
}

// GenerateManualOrderID creates a synthetic order id for offline
// settlements so the order-id uniqueness invariant still holds.
func GenerateManualOrderID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	return "manual_" + suffix
}
