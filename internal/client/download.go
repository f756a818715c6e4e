package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// downloadChunkSize is the streaming copy granularity. 8 KiB keeps memory
// flat regardless of artifact size.
const downloadChunkSize = 8 * 1024

// TransferFunc receives download progress. total is 0 when the server did
// not report a content length; callers should suppress percentages then.
type TransferFunc func(transferred, total int64)

// Download streams a job's result artifact to destPath, creating or
// truncating it. The payload is never buffered whole; chunks are written as
// they arrive. Returns the number of bytes written.
func (c *Client) Download(ctx context.Context, jobID, destPath string, onProgress TransferFunc) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(jobID), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.stream.Do(req)
	if err != nil {
		return 0, &DownloadError{JobID: jobID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, &DownloadError{
			JobID: jobID,
			Err:   fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body)),
		}
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	out, err := os.Create(destPath)
	if err != nil {
		return 0, &DownloadError{JobID: jobID, Err: err}
	}

	written, copyErr := copyChunks(out, resp.Body, total, onProgress)
	closeErr := out.Close()

	if copyErr != nil {
		return written, &DownloadError{JobID: jobID, Err: copyErr}
	}
	if closeErr != nil {
		return written, &DownloadError{JobID: jobID, Err: closeErr}
	}
	return written, nil
}

func copyChunks(dst io.Writer, src io.Reader, total int64, onProgress TransferFunc) (int64, error) {
	buf := make([]byte, downloadChunkSize)
	var written int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return written, fmt.Errorf("write failed: %w", err)
			}
			written += int64(n)
			if onProgress != nil {
				onProgress(written, total)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("read failed: %w", readErr)
		}
	}
}
