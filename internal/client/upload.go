package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/arstropica/gif-converter/internal/models"
)

// Upload submits a file for conversion and returns the created job's ID.
// The request is a single multipart POST carrying the source file under
// "files", the background image under "background" when a path is given,
// and the JSON-encoded options under "options". A background path that
// does not exist is silently omitted; requiring it is the caller's concern.
func (c *Client) Upload(ctx context.Context, filePath, bgImagePath string, opts models.ConversionOptions) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := addFormFile(writer, "files", filePath); err != nil {
		return "", err
	}
	if bgImagePath != "" {
		if _, err := os.Stat(bgImagePath); err == nil {
			if err := addFormFile(writer, "background", bgImagePath); err != nil {
				return "", err
			}
		}
	}

	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("failed to encode options: %w", err)
	}
	if err := writer.WriteField("options", string(optsJSON)); err != nil {
		return "", fmt.Errorf("failed to write options field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.api.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &SubmissionError{Message: errorText(respBody)}
	}

	var result struct {
		Jobs []struct {
			ID string `json:"id"`
		} `json:"jobs"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if len(result.Jobs) == 0 {
		return "", &SubmissionError{Message: "no job created"}
	}

	return result.Jobs[0].ID, nil
}

// addFormFile copies a local file into the multipart form under the given
// field name. The file handle is closed before returning on every path.
func addFormFile(writer *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	part, err := writer.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create form file %s: %w", field, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to copy %s into form: %w", path, err)
	}
	return nil
}

// errorText extracts the "error" field from a JSON error body, falling back
// to the raw body text when the body is not the expected shape.
func errorText(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return string(body)
}
