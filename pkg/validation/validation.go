// Package validation provides input validation for shot parameters and
// player-supplied strings.
package validation

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Input limits
const (
	MaxPlayerNameLen = 32
)

var (
	// Allow alphanumeric, spaces, hyphens, underscores, and basic punctuation
	// for player names.
	validPlayerNameChars = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.<>()]+$`)
)

// ValidateFireParams checks shot parameters before a projectile is spawned.
// Angle must be finite; power must be finite and within [0, maxPower].
func ValidateFireParams(angle, power, maxPower float64) error {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return fmt.Errorf("angle must be finite, got %v", angle)
	}
	if math.IsNaN(power) || math.IsInf(power, 0) {
		return fmt.Errorf("power must be finite, got %v", power)
	}
	if power < 0 || power > maxPower {
		return fmt.Errorf("power %g out of range [0, %g]", power, maxPower)
	}
	return nil
}

// ValidatePlayerName validates and sanitizes a player name.
func ValidatePlayerName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("player name cannot be empty")
	}

	if len(name) > MaxPlayerNameLen {
		return "", fmt.Errorf("player name too long: %d characters (max %d)", len(name), MaxPlayerNameLen)
	}

	if !utf8.ValidString(name) {
		return "", fmt.Errorf("player name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("player name cannot be only whitespace")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("player name contains control characters")
		}
	}

	if !validPlayerNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("player name contains invalid characters")
	}

	// Escape HTML so names are safe to echo into any UI surface.
	return html.EscapeString(trimmed), nil
}
