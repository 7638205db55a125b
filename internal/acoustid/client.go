package acoustid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// lookupMeta lists the metadata groups requested on lookup. The service caps
// requests at three groups; recordingids would otherwise be requested too, to
// make merging cheaper.
var lookupMeta = []string{"tracks", "recordings", "releasegroups"}

// Client provides access to the AcoustID web service.
type Client struct {
	apiKey     string
	userKey    string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserKey sets the user API key required for fingerprint submission.
func WithUserKey(key string) Option {
	return func(c *Client) {
		c.userKey = strings.TrimSpace(key)
	}
}

// WithTimeout overrides the default HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates an AcoustID client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("acoustid api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("acoustid base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Lookup queries the service for entries matching a fingerprint and returns
// the decoded response. duration is the fingerprinted audio length in
// seconds; the service expects whole seconds.
func (c *Client) Lookup(ctx context.Context, fingerprint string, duration float64) (*LookupResponse, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return nil, errors.New("fingerprint must not be empty")
	}
	if duration <= 0 {
		return nil, errors.New("duration must be positive")
	}
	endpoint, err := url.Parse(c.baseURL + "/lookup")
	if err != nil {
		return nil, fmt.Errorf("parse acoustid url: %w", err)
	}
	params := url.Values{}
	params.Set("client", c.apiKey)
	params.Set("format", "json")
	params.Set("meta", strings.Join(lookupMeta, " "))
	params.Set("duration", strconv.Itoa(int(duration)))
	params.Set("fingerprint", fingerprint)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, remoteError(resp, "lookup")
	}

	var payload LookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}
	return &payload, nil
}

// LookupTrackMetadata performs a lookup and normalizes the response into
// flat candidate metadata. See ParseLookup for the registry side effect.
func (c *Client) LookupTrackMetadata(ctx context.Context, fingerprint string, duration float64, registry *SubmissionRegistry) ([]TrackMetadata, error) {
	response, err := c.Lookup(ctx, fingerprint, duration)
	if err != nil {
		return nil, err
	}
	return ParseLookup(response, registry)
}

// Submission describes one fingerprint submitted for inclusion in the
// AcoustID database. Only Duration and Fingerprint are required; empty
// metadata fields are omitted from the request.
type Submission struct {
	Duration    float64
	Fingerprint string
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Year        int
}

// Submit sends a fingerprint with its metadata to the service. It requires a
// user API key in addition to the application key.
func (c *Client) Submit(ctx context.Context, sub Submission) error {
	if c.userKey == "" {
		return errors.New("acoustid user key required for submission")
	}
	if strings.TrimSpace(sub.Fingerprint) == "" {
		return errors.New("fingerprint must not be empty")
	}
	if sub.Duration <= 0 {
		return errors.New("duration must be positive")
	}

	form := url.Values{}
	form.Set("client", c.apiKey)
	form.Set("user", c.userKey)
	form.Set("format", "json")
	form.Set("duration.0", strconv.Itoa(int(sub.Duration)))
	form.Set("fingerprint.0", strings.TrimSpace(sub.Fingerprint))
	if sub.Title != "" {
		form.Set("track.0", sub.Title)
	}
	if sub.Artist != "" {
		form.Set("artist.0", sub.Artist)
	}
	if sub.Album != "" {
		form.Set("album.0", sub.Album)
	}
	if sub.AlbumArtist != "" {
		form.Set("albumartist.0", sub.AlbumArtist)
	}
	if sub.Year > 0 {
		form.Set("year.0", strconv.Itoa(sub.Year))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return remoteError(resp, "submit")
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode submit response: %w", err)
	}
	if payload.Status != "ok" {
		return statusError(payload.Status)
	}
	return nil
}

// remoteError extracts the service's error message from a non-200 response
// body when one is present.
func remoteError(resp *http.Response, operation string) *WebServiceError {
	var payload struct {
		Status string `json:"status"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error.Message != "" {
		return &WebServiceError{Status: payload.Status, Message: fmt.Sprintf("%s: %s", operation, payload.Error.Message)}
	}
	return &WebServiceError{Message: fmt.Sprintf("%s returned HTTP %d", operation, resp.StatusCode)}
}
