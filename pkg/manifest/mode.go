package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

const maxMode = 0o7777

// ParseMode reads an octal permission string. "0o644", "0644" and "644"
// are all accepted.
func ParseMode(s string) (uint32, error) {
	text := strings.TrimSpace(s)
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0o"), "0O")
	if text == "" {
		return 0, fmt.Errorf("empty mode %q", s)
	}
	v, err := strconv.ParseUint(text, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: not an octal number", s)
	}
	if v > maxMode {
		return 0, fmt.Errorf("invalid mode %q: more than 12 permission bits", s)
	}
	return uint32(v), nil
}

// FormatMode renders permission bits the way they are stored in the
// manifest
func FormatMode(mode uint32) string {
	return fmt.Sprintf("0o%o", mode&maxMode)
}
