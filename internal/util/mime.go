package util

import (
	"net/http"
	"strings"
)

// SniffLen is the number of leading bytes content sniffing looks at.
const SniffLen = 512

// SniffMIME detects the media type from the leading bytes of data, ignoring
// any client-declared type.
func SniffMIME(data []byte) string {
	if len(data) > SniffLen {
		data = data[:SniffLen]
	}
	mimeType := http.DetectContentType(data)
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return strings.TrimSpace(mimeType)
}

func IsImageMIME(mimeType string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(mimeType))
	return strings.HasPrefix(cleaned, "image/")
}

// IsScalableMIME reports whether the image decoders registered by the asset
// package can read the type.
func IsScalableMIME(mimeType string) bool {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp", "image/tiff":
		return true
	default:
		return false
	}
}

// MIMEAllowed matches mimeType against a list that may contain wildcards
// such as "image/*". An empty list allows any image type.
func MIMEAllowed(mimeType string, allowed []string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(mimeType))
	if len(allowed) == 0 {
		return IsImageMIME(cleaned)
	}
	for _, candidate := range allowed {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == cleaned {
			return true
		}
		if prefix, ok := strings.CutSuffix(candidate, "/*"); ok && strings.HasPrefix(cleaned, prefix+"/") {
			return true
		}
	}
	return false
}
