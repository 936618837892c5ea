package validation

import (
	"encoding/base64"
	"strings"

	"github.com/investiai/portfolio-backend/internal/api/request"
)

// ValidateImport validates a bulk import request: it must carry pasted text
// or a decodable base64 payload with a MIME type.
func ValidateImport(req request.ImportRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Text) == "" && !req.HasFile() {
		errors["input"] = "either text or a file payload is required"
	}

	if req.Data != "" {
		if req.MimeType == "" {
			errors["mimeType"] = "mimeType is required for file payloads"
		}
		if _, err := base64.StdEncoding.DecodeString(req.Data); err != nil {
			errors["data"] = "data must be valid base64"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
