package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

func FoldToken(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func StringPtr(v string) *string { return &v }

func DerefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
