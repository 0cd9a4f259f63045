package utils

import (
	"fmt"
	"math/rand"
	"strconv"
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

// ParseDate parses a YYYY-MM-DD value.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}

// GenerateBookingReference creates a display reference for a booking
func GenerateBookingReference() string {
	now := time.Now()

	// Format: BK-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("BK-%s-%s-%s", datePart, timePart, randomPart)
}

// GenerateSeriesKey creates an opaque key linking the bookings of a series
func GenerateSeriesKey() string {
	return uuid.New().String()
}

// CalculateTotalPages returns the page count for a result set of the given size.
func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
