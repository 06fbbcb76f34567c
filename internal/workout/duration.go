package workout

import (
	"strconv"
	"strings"
)

// minuteTokens mark a rest description as minutes rather than seconds.
// "分" covers both 分鐘 and 分钟.
var minuteTokens = []string{"min", "分"}

// ParseDuration converts a free-text rest description ("30 seconds",
// "1 minute", "30秒", "2分鐘") into whole seconds. All digits in the text are
// joined into one number; text without digits falls back to
// DefaultRestSeconds. It never fails.
func ParseDuration(text string) int {
	s := strings.ToLower(strings.TrimSpace(text))

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return DefaultRestSeconds
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil || n < 0 {
		return DefaultRestSeconds
	}

	for _, token := range minuteTokens {
		if strings.Contains(s, token) {
			return n * 60
		}
	}
	return n
}

// ParseDurationPtr is ParseDuration for optional input; nil yields the default
func ParseDurationPtr(text *string) int {
	if text == nil {
		return DefaultRestSeconds
	}
	return ParseDuration(*text)
}
