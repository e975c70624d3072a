package backendhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ContentBackend = (*Client)(nil)

// Client implements driven.ContentBackend against the content processing
// backend's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds backend connection configuration
type Config struct {
	// BaseURL is the backend endpoint (e.g., http://localhost:8080)
	BaseURL string

	// Timeout for HTTP requests. Uploads, crawls and retrains can run
	// long, so this should be generous.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 120 * time.Second,
	}
}

// NewClient creates a new backend client
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// errorPayload is the backend's error response body
type errorPayload struct {
	Error string `json:"error"`
}

// ListDocuments returns a bot's documents in backend order.
func (c *Client) ListDocuments(ctx context.Context, customerID, botID string) ([]*domain.Document, error) {
	endpoint := fmt.Sprintf("%s/api/documents?botId=%s&customerId=%s",
		c.baseURL, url.QueryEscape(botID), url.QueryEscape(customerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Documents []*domain.Document `json:"documents"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}
	return payload.Documents, nil
}

// UploadFile sends a file submission as multipart form data.
func (c *Client) UploadFile(ctx context.Context, sub *domain.UploadSubmission) (*driven.UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", sub.FileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(sub.File); err != nil {
		return nil, err
	}
	if err := w.WriteField("botId", sub.BotID); err != nil {
		return nil, err
	}
	if err := w.WriteField("customerId", sub.CustomerID); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/content/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var result driven.UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadText sends a pasted-text or synthesized Q&A submission.
func (c *Client) UploadText(ctx context.Context, sub *domain.UploadSubmission) (*domain.Document, error) {
	body := map[string]string{
		"botId":      sub.BotID,
		"customerId": sub.CustomerID,
		"title":      sub.Title,
		"content":    sub.Content,
	}

	var payload struct {
		Document *domain.Document `json:"document"`
	}
	if err := c.postJSON(ctx, "/api/content/text", body, &payload); err != nil {
		return nil, err
	}
	return payload.Document, nil
}

// ScrapeWebsite ingests a single page, or crawls the full site.
func (c *Client) ScrapeWebsite(ctx context.Context, sub *domain.UploadSubmission) (*driven.ScrapeResult, error) {
	body := map[string]interface{}{
		"botId":      sub.BotID,
		"customerId": sub.CustomerID,
		"url":        sub.URL,
		"fullSite":   sub.FullSite,
	}

	var result driven.ScrapeResult
	if err := c.postJSON(ctx, "/api/content/scrape", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExtractVideo ingests a video transcript.
func (c *Client) ExtractVideo(ctx context.Context, sub *domain.UploadSubmission) (*domain.Document, error) {
	body := map[string]string{
		"botId":      sub.BotID,
		"customerId": sub.CustomerID,
		"url":        sub.URL,
	}

	var payload struct {
		Document *domain.Document `json:"document"`
	}
	if err := c.postJSON(ctx, "/api/content/youtube", body, &payload); err != nil {
		return nil, err
	}
	return payload.Document, nil
}

// Retrain re-processes the given documents.
func (c *Client) Retrain(ctx context.Context, customerID, botID string, documentIDs []string) (int, error) {
	return c.bulk(ctx, "/api/content/retrain", customerID, botID, documentIDs)
}

// DeleteBulk removes the given documents.
func (c *Client) DeleteBulk(ctx context.Context, customerID, botID string, documentIDs []string) (int, error) {
	return c.bulk(ctx, "/api/content/delete-bulk", customerID, botID, documentIDs)
}

func (c *Client) bulk(ctx context.Context, path, customerID, botID string, documentIDs []string) (int, error) {
	body := map[string]interface{}{
		"botId":       botID,
		"customerId":  customerID,
		"documentIds": documentIDs,
	}

	var payload struct {
		Count int `json:"count"`
	}
	if err := c.postJSON(ctx, path, body, &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

// postJSON sends a JSON body and decodes a JSON response.
func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do executes the request and decodes the response into out. Backend error
// payloads become domain.BackendError; transport timeouts and cancelled
// contexts become domain.ErrTimeout.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %s %s", domain.ErrTimeout, req.Method, req.URL.Path)
		}
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		var payload errorPayload
		_ = json.Unmarshal(respBody, &payload)
		return &domain.BackendError{
			StatusCode: resp.StatusCode,
			Message:    payload.Error,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue) && ue.Timeout()
}
