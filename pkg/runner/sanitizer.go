package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "CHEMBOT_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans user input using the limit from the environment.
func SanitizeInput(input string) (string, error) {
	return SanitizeInputLimit(input, getMaxInputSize())
}

// SanitizeInputLimit enforces limit bytes, validates UTF-8, strips dangerous
// control characters and normalizes to NFC, so "H₂O" typed with combining
// sequences compares equal to its precomposed form.
func SanitizeInputLimit(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	// We explicitly reject rather than truncate to ensure deterministic state.
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	// Newline, tab and carriage return survive. ESC, NULL, BEL and friends
	// are removed to prevent log poisoning and terminal corruption.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if !clean {
		var b strings.Builder
		b.Grow(len(input))
		for _, r := range input {
			if !unicode.IsControl(r) || isSafeControl(r) {
				b.WriteRune(r)
			}
		}
		input = b.String()
	}

	return norm.NFC.String(input), nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func getMaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
