package watson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wordsplice/internal/services"
)

const (
	defaultModel   = "en-US_BroadbandModel"
	defaultTimeout = 30 * time.Minute
	recognizePath  = "/v1/recognize"
	apiKeyUser     = "apikey"
)

var contentTypes = map[string]string{
	".mp3":  "audio/mp3",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
}

// Config describes the speech-to-text endpoint.
type Config struct {
	APIKey          string
	URL             string
	Model           string
	SmartFormatting bool
	Timeout         time.Duration
}

// Client posts audio to the recognize endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a Watson client.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.URL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Recognize uploads the audio at audioPath and returns the raw JSON
// recognition result.
func (c *Client) Recognize(ctx context.Context, audioPath string) ([]byte, error) {
	if c.cfg.APIKey == "" || c.cfg.URL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "recognize", "watson api_key and url are required", nil)
	}
	contentType, ok := contentTypes[strings.ToLower(filepath.Ext(audioPath))]
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "transcribe", "recognize",
			fmt.Sprintf("unsupported audio extension %q", filepath.Ext(audioPath)), nil)
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("watson recognize: open audio: %w", err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("watson recognize: stat audio: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, file)
	if err != nil {
		return nil, fmt.Errorf("watson recognize: request: %w", err)
	}
	req.ContentLength = info.Size()
	req.SetBasicAuth(apiKeyUser, c.cfg.APIKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "recognize", "request failed", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("watson recognize: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "recognize",
			fmt.Sprintf("http %d: %s", resp.StatusCode, apiError(body)), nil)
	}
	if !json.Valid(body) {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "recognize", "response is not json", nil)
	}
	return body, nil
}

func (c *Client) endpoint() (string, error) {
	base, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "transcribe", "recognize", "invalid watson url", err)
	}
	base = base.JoinPath(recognizePath)
	query := base.Query()
	query.Set("model", c.cfg.Model)
	query.Set("timestamps", "true")
	query.Set("word_confidence", "true")
	query.Set("smart_formatting", strconv.FormatBool(c.cfg.SmartFormatting))
	base.RawQuery = query.Encode()
	return base.String(), nil
}

func apiError(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		return strings.TrimSpace(payload.Error)
	}
	return strings.TrimSpace(string(body))
}
