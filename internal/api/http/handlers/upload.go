package handlers

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/BadhanCB/outfitex-backend/pkg/util"
)

// multipartForm parses the request body, rejecting non multipart payloads.
func multipartForm(c *fiber.Ctx) (*multipart.Form, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperrors.NewValidationError("multipart form payload required", nil)
	}
	return form, nil
}

// readUpload returns the bytes of a multipart file field. A missing field
// yields nil so the service can report it with the other missing inputs.
func readUpload(form *multipart.Form, field string, maxBytes int64) ([]byte, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	header := files[0]
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, apperrors.NewValidationError("file too large", map[string]any{"max_bytes": maxBytes})
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperrors.NewValidationError("unreadable file", nil)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.NewValidationError("unreadable file", nil)
	}
	return data, nil
}

func formValue(form *multipart.Form, field string) string {
	if values := form.Value[field]; len(values) > 0 {
		return values[0]
	}
	return ""
}
