package asset

import (
	"fmt"
	"io"
	"strings"
)

// Upload is a photo supplied with a mutation. A zero or partial value means
// no photo was supplied.
type Upload struct {
	Filename    string
	ContentType string
	// Size is the declared length; negative when unknown.
	Size int64
	Body io.Reader
}

// Present reports whether u is a genuine, non-empty file upload.
func (u *Upload) Present() bool {
	if u == nil || u.Body == nil {
		return false
	}
	if strings.TrimSpace(u.Filename) == "" {
		return false
	}
	return u.Size != 0
}

// UploadError reports that the blob store could not take a photo.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload photo %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
