// Package timecode parses and formats free-text duration tokens.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// fullWidthColon is produced by Japanese input methods and accepted
// interchangeably with the ASCII colon.
const fullWidthColon = "："

// Parse converts a duration token into seconds.
// "M:S" yields M*60+S, a lone numeric "M" yields M*60, and anything
// else yields 0. Duration fields are free text so a performer can type
// "~4" or leave them blank; parsing never fails, it falls back to zero.
func Parse(raw string) int {
	normalized := strings.ReplaceAll(raw, fullWidthColon, ":")
	parts := strings.Split(normalized, ":")
	switch len(parts) {
	case 2:
		m, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0
		}
		s, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0
		}
		return m*60 + s
	case 1:
		if !isDigits(parts[0]) {
			return 0
		}
		m, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0
		}
		return m * 60
	default:
		return 0
	}
}

// Format renders a second count as "MM:SS", zero-padded to at least
// two digits each. Minutes are unbounded (3661 -> "61:01").
func Format(totalSeconds int) string {
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
