package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// roomIDMax bounds room identifiers. IDs travel through DOT sources, SVG
// labels, cache keys, and URL paths, so the screen is conservative.
const roomIDMax = 256

// ValidateRoomID screens a room identifier at the ingest boundary.
// It rejects empty and oversized IDs, control characters, and sequences
// that read as path or escape tricks downstream.
func ValidateRoomID(id string) error {
	switch {
	case id == "":
		return New(ErrCodeInvalidRoom, "room id cannot be empty")
	case len(id) > roomIDMax:
		return New(ErrCodeInvalidRoom, "room id exceeds %d characters", roomIDMax)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRoom, "room id contains control characters")
		}
	}

	for _, seq := range []string{"..", "//", "\\", "\x00"} {
		if strings.Contains(id, seq) {
			return New(ErrCodeInvalidRoom, "room id contains %q", seq)
		}
	}

	return nil
}

// dungeonIDPattern matches snapshot identifiers: UUIDs plus the slug-style
// names accepted on ingest. Leading dots and dashes are excluded so an ID
// can never masquerade as a flag or a hidden file.
var dungeonIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateDungeonID screens a snapshot identifier as it appears in URL
// paths and store keys.
func ValidateDungeonID(id string) error {
	switch {
	case id == "":
		return New(ErrCodeInvalidInput, "dungeon id cannot be empty")
	case len(id) > 128:
		return New(ErrCodeInvalidInput, "dungeon id exceeds 128 characters")
	case !dungeonIDPattern.MatchString(id):
		return New(ErrCodeInvalidInput, "invalid dungeon id: %q", id)
	}
	return nil
}
