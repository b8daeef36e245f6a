package validators

import "strings"

func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

// SanitizeOptional trims *s and returns nil when nothing is left.
func SanitizeOptional(s *string, maxLen int) *string {
	if s == nil {
		return nil
	}
	v := SanitizeString(*s, maxLen)
	if v == "" {
		return nil
	}
	return &v
}
