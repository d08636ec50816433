package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSniffMIME(t *testing.T) {
	t.Parallel()

	require.Equal(t, "image/png", SniffMIME([]byte("\x89PNG\r\n\x1a\n0000")))
	require.Equal(t, "image/jpeg", SniffMIME([]byte("\xff\xd8\xff\xe0 jfif")))
	require.Equal(t, "text/plain", SniffMIME([]byte("hello fridge")))
}

func TestMIMEAllowed(t *testing.T) {
	t.Parallel()

	require.True(t, MIMEAllowed("image/webp", nil))
	require.False(t, MIMEAllowed("text/plain", nil))
	require.True(t, MIMEAllowed("image/png", []string{"image/jpeg", "image/png"}))
	require.False(t, MIMEAllowed("image/gif", []string{"image/jpeg", "image/png"}))
	require.True(t, MIMEAllowed("IMAGE/GIF", []string{" image/* "}))
	require.False(t, MIMEAllowed("application/pdf", []string{"image/*"}))
}

func TestIsScalableMIME(t *testing.T) {
	t.Parallel()

	require.True(t, IsScalableMIME("image/jpeg"))
	require.True(t, IsScalableMIME(" IMAGE/WEBP "))
	require.False(t, IsScalableMIME("image/svg+xml"))
	require.False(t, IsScalableMIME("image/avif"))
}
