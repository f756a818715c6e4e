// Package client implements the HTTP client for the gif-converter service:
// health probe, multipart upload, job status polling and result download.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arstropica/gif-converter/internal/models"
)

const (
	// DefaultBaseURL is the address of a locally running service.
	DefaultBaseURL = "http://localhost:5051"

	healthTimeout  = 5 * time.Second
	requestTimeout = 30 * time.Second
)

// Client talks to a gif-converter service instance.
type Client struct {
	baseURL string

	// api has an overall request deadline for the short JSON calls;
	// stream has none because downloads may outlive any fixed timeout
	// and are bounded by their context instead.
	api    *http.Client
	stream *http.Client
}

// New creates a Client for the given base URL. An empty URL selects
// DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		api:     &http.Client{Timeout: requestTimeout},
		stream:  &http.Client{},
	}
}

// BaseURL returns the configured service address.
func (c *Client) BaseURL() string { return c.baseURL }

// Health probes the service's liveness endpoint. Any failure to reach the
// endpoint is reported as a ConnectionError; job work must not start after
// a failed probe.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return &ConnectionError{BaseURL: c.baseURL, Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

// GetJob fetches the current snapshot of a job.
func (c *Client) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	url := fmt.Sprintf("%s/api/jobs/%s", c.baseURL, jobID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.api.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s",
			resp.StatusCode, string(body))
	}

	var job models.Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	if job.ID == "" {
		job.ID = jobID
	}

	return &job, nil
}

// DownloadURL returns the public URL of a job's result artifact.
func (c *Client) DownloadURL(jobID string) string {
	return fmt.Sprintf("%s/api/download/%s", c.baseURL, jobID)
}
