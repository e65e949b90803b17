package locker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/postomat/internal/converter"
	"github.com/mrlokans/postomat/internal/entities"
)

const (
	// DefaultPort is where the locker controller serves its storage API.
	DefaultPort = 5003

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 1 << 20
)

// Client talks to the locker controller's storage API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	port       int
	converter  *converter.Converter
}

// Option customises a Client.
type Option func(*Client)

// WithPort overrides DefaultPort.
func WithPort(port int) Option {
	return func(c *Client) {
		c.port = port
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithConverter sets the rule set used to structure status payloads.
func WithConverter(conv *converter.Converter) Option {
	return func(c *Client) {
		c.converter = conv
	}
}

// NewClient creates a client for the controller at baseURL (scheme and host, no port),
// e.g. "http://192.168.1.20".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		port:       DefaultPort,
		converter:  converter.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the controller address the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetStatus fetches a fresh snapshot of every cell.
func (c *Client) GetStatus(ctx context.Context) ([]entities.Cell, error) {
	var envelope entities.StatusEnvelope
	if err := c.get(ctx, c.storageURL(), &envelope); err != nil {
		return nil, fmt.Errorf("locker.GetStatus: %w", err)
	}

	if envelope.Data == nil {
		return nil, fmt.Errorf("locker.GetStatus: %w", &converter.StructuringError{
			Target:   "[]entities.Cell",
			Problems: []string{"response has no 'data' field"},
		})
	}

	cells, err := converter.Load[[]entities.Cell](c.converter, envelope.Data, true)
	if err != nil {
		return nil, fmt.Errorf("locker.GetStatus: %w", err)
	}

	slog.Debug("locker status fetched", slog.Int("cells", len(cells)))
	return cells, nil
}

// GetCell fetches the status and returns the cell with the given slot number.
func (c *Client) GetCell(ctx context.Context, cellID int) (*entities.Cell, error) {
	cells, err := c.GetStatus(ctx)
	if err != nil {
		return nil, err
	}
	cell, ok := entities.FindCell(cells, cellID)
	if !ok {
		return nil, fmt.Errorf("locker.GetCell: cell %d: %w", cellID, ErrCellNotFound)
	}
	return cell, nil
}

// OpenCell asks the controller to unlock a cell. The response body is ignored.
func (c *Client) OpenCell(ctx context.Context, cellID int) error {
	if err := c.get(ctx, c.storageURL(strconv.Itoa(cellID), "open"), nil); err != nil {
		return fmt.Errorf("locker.OpenCell: %w", err)
	}
	slog.Info("locker cell opened", slog.Int("cell_id", cellID))
	return nil
}

func (c *Client) storageURL(segments ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d/storage", c.baseURL, c.port)
	for _, s := range segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readHTTPError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readHTTPError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
	}
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
}
