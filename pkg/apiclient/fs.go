package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/marmos91/sharefs/pkg/sharefs"
)

const fsPrefix = "/api/v1/fs"

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Data      map[string]string `json:"data,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type existsResponse struct {
	Kind sharefs.Kind `json:"kind"`
}

type listResponse struct {
	Entries []sharefs.DirEntry `json:"entries"`
}

type statResponse struct {
	Size        *int64             `json:"size"`
	IsDirectory *bool              `json:"is_directory"`
	Rich        *sharefs.FileStats `json:"rich"`
}

func pathQuery(rel string) url.Values {
	return url.Values{"path": {rel}}
}

// Ready calls GET /health/ready. A gateway that cannot reach its share
// answers 503, returned as an *APIError.
func (c *Client) Ready(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/health/ready", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReadFile downloads a file.
func (c *Client) ReadFile(ctx context.Context, rel string) ([]byte, error) {
	var data []byte
	err := c.do(ctx, request{
		method:    http.MethodGet,
		path:      fsPrefix + "/content",
		query:     pathQuery(rel),
		rawResult: &data,
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFile uploads data, replacing any existing file.
func (c *Client) WriteFile(ctx context.Context, rel string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	return c.do(ctx, request{
		method:  http.MethodPut,
		path:    fsPrefix + "/content",
		query:   pathQuery(rel),
		rawBody: data,
	})
}

// ListDir lists a directory.
func (c *Client) ListDir(ctx context.Context, rel string) ([]sharefs.DirEntry, error) {
	var resp listResponse
	if err := c.get(ctx, fsPrefix+"/list", pathQuery(rel), &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// Stat returns the size and kind of a path.
func (c *Client) Stat(ctx context.Context, rel string) (sharefs.StatResult, error) {
	var resp statResponse
	if err := c.get(ctx, fsPrefix+"/stat", pathQuery(rel), &resp); err != nil {
		return sharefs.StatResult{}, err
	}
	var res sharefs.StatResult
	if resp.Size != nil {
		res.Size = *resp.Size
	}
	if resp.IsDirectory != nil {
		res.IsDirectory = *resp.IsDirectory
	}
	return res, nil
}

// FileStats returns full metadata. A missing path reports found == false
// with a nil error.
func (c *Client) FileStats(ctx context.Context, rel string) (sharefs.FileStats, bool, error) {
	q := pathQuery(rel)
	q.Set("rich", strconv.FormatBool(true))

	var resp statResponse
	if err := c.get(ctx, fsPrefix+"/stat", q, &resp); err != nil {
		// A share error carries a code; a plain 404 means the path is absent.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() && apiErr.Code == "" {
			return sharefs.FileStats{}, false, nil
		}
		return sharefs.FileStats{}, false, err
	}
	if resp.Rich == nil {
		return sharefs.FileStats{}, false, nil
	}
	return *resp.Rich, true, nil
}

// Exists classifies a path.
func (c *Client) Exists(ctx context.Context, rel string) (sharefs.Kind, error) {
	var resp existsResponse
	if err := c.get(ctx, fsPrefix+"/exists", pathQuery(rel), &resp); err != nil {
		return sharefs.KindNotFound, err
	}
	return resp.Kind, nil
}

type mkdirRequest struct {
	Path    string `json:"path"`
	Parents bool   `json:"parents"`
}

// Mkdir creates one directory.
func (c *Client) Mkdir(ctx context.Context, rel string) error {
	return c.post(ctx, fsPrefix+"/mkdir", mkdirRequest{Path: rel}, nil)
}

// MkdirAll creates a directory and any missing parents.
func (c *Client) MkdirAll(ctx context.Context, rel string) error {
	return c.post(ctx, fsPrefix+"/mkdir", mkdirRequest{Path: rel, Parents: true}, nil)
}

// Remove deletes a file or an empty directory.
func (c *Client) Remove(ctx context.Context, rel string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: fsPrefix, query: pathQuery(rel)})
}

type renameRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Replace bool   `json:"replace"`
}

// Rename moves from to to within the share.
func (c *Client) Rename(ctx context.Context, from, to string, replace bool) error {
	return c.post(ctx, fsPrefix+"/rename", renameRequest{From: from, To: to, Replace: replace}, nil)
}
