package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultLocation is where the project list is looked up when nothing is configured.
	DefaultLocation = "./challenge.json"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// ErrMalformedDocument is returned when the document is not a JSON object
// with a projects array.
var ErrMalformedDocument = errors.New("malformed project document")

// Source returns the raw projects of the document.
type Source interface {
	FetchProjects(ctx context.Context) ([]Project, error)
}

// NewSource picks a Source for location: http(s) URLs go through a Client,
// file:// URLs and plain paths through a FileSource.
func NewSource(location string, timeout time.Duration) Source {
	if location == "" {
		location = DefaultLocation
	}
	u, err := url.Parse(location)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			return NewClient(location, timeout)
		case "file":
			return NewFileSource(u.Path)
		}
	}
	// Anything else, including relative paths like ../challenge.json, is a file.
	return NewFileSource(location)
}

// Client fetches the document over HTTP.
type Client struct {
	httpClient *http.Client
	docURL     string
}

// NewClient creates a Client for docURL. A zero timeout means DefaultTimeout.
func NewClient(docURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		docURL: docURL,
	}
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// URL returns the document URL.
func (c *Client) URL() string {
	return c.docURL
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.docURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			URL:        c.docURL,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	return respBody, nil
}

// FetchProjects performs the single GET of the document.
func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	body, err := c.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	return DecodeDocument(body)
}

// FileSource reads the document from disk.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: filepath.Clean(path)}
}

// Path returns the file path.
func (f *FileSource) Path() string {
	return f.path
}

// FetchProjects reads and decodes the file.
func (f *FileSource) FetchProjects(ctx context.Context) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects file: %w", err)
	}
	return DecodeDocument(data)
}

// DecodeDocument parses a project list document.
func DecodeDocument(data []byte) ([]Project, error) {
	var raw struct {
		Projects *[]Project `json:"projects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if raw.Projects == nil {
		return nil, fmt.Errorf("%w: missing projects array", ErrMalformedDocument)
	}
	return *raw.Projects, nil
}
