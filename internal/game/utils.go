package game

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var integerPattern = regexp.MustCompile(`^-?[0-9]+$`)

// NewPlayerID generates an opaque unique player ID
func NewPlayerID() string {
	return uuid.New().String()
}

// DefaultPlayerName returns the name given to the player added at position (1-based)
func DefaultPlayerName(position int) string {
	return "Player " + strconv.Itoa(position)
}

// ParseScore parses a raw score input: optional leading '-', then digits.
// Surrounding whitespace is ignored.
func ParseScore(raw string) (int, bool) {
	t := strings.TrimSpace(raw)
	if !integerPattern.MatchString(t) {
		return 0, false
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Timestamp formats t the way rounds record it
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
