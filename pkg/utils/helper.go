package utils

import (
	"strconv"
	"strings"

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

// GenerateBookingRef creates a short human-readable booking reference.
// Format: first 8 hex chars of a UUID, uppercased (e.g. "3F2A91BC").
func GenerateBookingRef() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// NormalizeSeatNumber validates and normalizes a seat label.
// Accepted format: one row letter A-Z followed by a seat number 1-99
// (e.g. "A1", "b12"). Returns the uppercased label and whether it is valid.
func NormalizeSeatNumber(seat string) (string, bool) {
	seat = strings.ToUpper(strings.TrimSpace(seat))
	if len(seat) < 2 {
		return "", false
	}

	row := seat[0]
	if row < 'A' || row > 'Z' {
		return "", false
	}

	for i := 1; i < len(seat); i++ {
		if seat[i] < '0' || seat[i] > '9' {
			return "", false
		}
	}

	num, err := strconv.Atoi(seat[1:])
	if err != nil {
		return "", false
	}
	if num < 1 || num > 99 {
		return "", false
	}

	return seat, true
}
