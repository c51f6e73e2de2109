package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// DefaultTimeout bounds a single artifact download
const DefaultTimeout = 5 * time.Minute

// fallbackName is used when the URL path has no usable file name
const fallbackName = "artifact"

// Client downloads build artifacts over HTTP(S)
type Client struct {
	http *http.Client
}

// NewClient creates a Client. A nil http.Client gets one with DefaultTimeout.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{http: hc}
}

// Fetch downloads rawURL into dir on fs and returns the written path.
// Any status other than 200 is an error.
func (c *Client) Fetch(ctx context.Context, fs afero.Fs, rawURL, dir string) (dest string, err error) {
	name, err := FileName(rawURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: %d", rawURL, resp.StatusCode)
	}

	dest = filepath.Join(dir, name)
	file, err := fs.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", dest, cerr)
		}
		if err != nil {
			fs.Remove(dest)
			dest = ""
		}
	}()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}

	return dest, nil
}

// FileName derives the local file name for a download URL
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid artifact url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported artifact url scheme: %q", u.Scheme)
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return fallbackName, nil
	}
	return name, nil
}
