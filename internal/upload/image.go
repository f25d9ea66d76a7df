// Package upload reads image files posted through dashboard forms.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// MaxImageBytes is the largest image the API accepts.
const MaxImageBytes = 5 << 20

// MaxFormBytes bounds a whole multipart form carrying one image.
const MaxFormBytes = MaxImageBytes + 1<<20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image reads the optional image in field. A missing file yields (nil, nil).
// Invalid files yield shared.FieldErrors keyed by field.
func Image(r *http.Request, field string) (*xano.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("upload: read %s: %w", field, err)
	}
	defer file.Close()

	if header.Size > MaxImageBytes {
		return nil, shared.FieldErrors{field: "Images must be 5 MB or smaller"}
	}
	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("upload: read %s: %w", field, err)
	}
	return Validate(field, data)
}

// Validate checks size and sniffed content type and names the file with a fresh UUID.
func Validate(field string, data []byte) (*xano.File, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > MaxImageBytes {
		return nil, shared.FieldErrors{field: "Images must be 5 MB or smaller"}
	}
	contentType := mimetype.Detect(data).String()
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, shared.FieldErrors{field: "Upload a JPEG, PNG, GIF or WEBP image"}
	}
	return &xano.File{
		Field:       field,
		Name:        uuid.NewString() + ext,
		ContentType: contentType,
		Reader:      bytes.NewReader(data),
	}, nil
}
