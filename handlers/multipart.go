package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"localconnect/backend"
	"localconnect/validators"
)

const maxUploadSize = 10 << 20 // 10 MB

// readMultipart pulls the text fields and the optional upload out of a
// multipart request so they can be forwarded upstream.
func readMultipart(r *http.Request, fileField string) (map[string]string, *backend.Upload, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, nil, err
	}
	fields := make(map[string]string)
	for key, vals := range r.MultipartForm.Value {
		if len(vals) > 0 {
			fields[key] = vals[0]
		}
	}
	var upload *backend.Upload
	if headers := r.MultipartForm.File[fileField]; len(headers) > 0 {
		f, err := headers[0].Open()
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			return nil, nil, err
		}
		upload = &backend.Upload{Field: fileField, Filename: headers[0].Filename, Content: content}
	}
	return fields, upload, nil
}

// cleanTagsField rewrites a JSON-encoded tags field in place, applying the
// trim-and-dedup insertion rule. Returns false if the field is present but
// not a JSON string array.
func cleanTagsField(fields map[string]string) bool {
	raw, ok := fields["tags"]
	if !ok || raw == "" {
		return true
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return false
	}
	cleaned, err := json.Marshal(validators.CleanTags(tags))
	if err != nil {
		return false
	}
	fields["tags"] = string(cleaned)
	return true
}
