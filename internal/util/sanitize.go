package util

import (
	"path"
	"regexp"
	"strings"
	"unicode"
)

// maxPhotoNameRunes bounds the filename part of a blob key.
const maxPhotoNameRunes = 120

// FallbackPhotoName replaces filenames that sanitize to nothing.
const FallbackPhotoName = "photo"

var invalidKeyChars = regexp.MustCompile(`[<>:"/\\|?*#%&{}$!'@+=` + "`" + `]`)

var repeatedUnderscores = regexp.MustCompile(`_{2,}`)

// SanitizePhotoName turns a client-supplied filename into a string that is
// safe as the last segment of a blob key and readable in a URL.
func SanitizePhotoName(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if base == "." || base == "/" || base == ".." {
		return FallbackPhotoName
	}

	builder := strings.Builder{}
	builder.Grow(len(base))

	for _, char := range base {
		switch {
		case unicode.IsControl(char) || isInvisibleUnicode(char):
			continue
		case unicode.IsSpace(char):
			builder.WriteRune('_')
		default:
			builder.WriteRune(char)
		}
	}

	cleaned := invalidKeyChars.ReplaceAllString(builder.String(), "_")
	cleaned = repeatedUnderscores.ReplaceAllString(cleaned, "_")
	cleaned = strings.Trim(cleaned, "._")
	if cleaned == "" {
		return FallbackPhotoName
	}

	// Truncate by runes (not bytes) to avoid splitting multi-byte characters.
	if runes := []rune(cleaned); len(runes) > maxPhotoNameRunes {
		cleaned = string(runes[:maxPhotoNameRunes])
	}

	return cleaned
}

// isInvisibleUnicode returns true for zero-width, formatting, and other
// invisible Unicode characters.
func isInvisibleUnicode(r rune) bool {
	switch r {
	case
		'\u200B', // Zero-Width Space
		'\u200C', // Zero-Width Non-Joiner
		'\u200D', // Zero-Width Joiner
		'\u200E', // Left-to-Right Mark
		'\u200F', // Right-to-Left Mark
		'\u2060', // Word Joiner
		'\uFEFF', // Zero-Width No-Break Space / BOM
		'\uFFF9', // Interlinear Annotation Anchor
		'\uFFFA', // Interlinear Annotation Separator
		'\uFFFB': // Interlinear Annotation Terminator
		return true
	}

	return unicode.Is(unicode.Cf, r)
}
