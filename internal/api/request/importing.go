package request

// ImportRequest carries the raw input of a bulk import: either pasted
// freeform text, or a base64-encoded file/image payload with its MIME type.
type ImportRequest struct {
	Text     string `json:"text,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"` // base64
}

// HasFile reports whether the request carries a binary payload.
func (r ImportRequest) HasFile() bool {
	return r.Data != "" && r.MimeType != ""
}
