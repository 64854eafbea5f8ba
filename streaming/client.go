package streaming

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/streamworks/streamctl/session"
)

// Client talks to the streaming platform API
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *session.Manager
	logger         zerolog.Logger
	userAgent      string
	uploadMimeType string
	lenientAddAck  bool
}

// NewClient creates a new streaming platform client. The session manager is
// consulted for the bearer token on every authenticated request and updated
// by Login.
func NewClient(baseURL string, sess *session.Manager, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: server URL is required", ErrInvalidConfig)
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: session manager is required", ErrInvalidConfig)
	}

	baseURL = strings.TrimRight(baseURL, "/")

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	return &Client{
		baseURL:        baseURL,
		httpClient:     httpClient,
		session:        sess,
		logger:         logger,
		userAgent:      options.userAgent,
		uploadMimeType: options.uploadMimeType,
		lenientAddAck:  options.lenientAddAck,
	}, nil
}

// doRequest performs an HTTP request and returns the raw response body.
// Failures are normalized: errors before a response arrives become
// TransportError, non-2xx statuses become StatusError.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, body io.Reader, contentType string, authed bool) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/api%s", c.baseURL, endpoint)
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if authed {
		token, ok := c.session.Token()
		if !ok {
			return nil, ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making streaming API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}

// postJSON marshals payload and POSTs it as a JSON body
func (c *Client) postJSON(ctx context.Context, endpoint string, params url.Values, payload any, authed bool) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.doRequest(ctx, http.MethodPost, endpoint, params, bytes.NewReader(body), "application/json; charset=utf-8", authed)
}

// Login authenticates with the platform and stores the resulting role and
// token in the session. A missing role in the response defaults to "user".
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := c.postJSON(ctx, "/login", nil, loginRequest{Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	result := env.loginResult()
	if err := c.session.Save(string(result.Role), result.Token); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	c.logger.Debug().Str("role", string(result.Role)).Msg("Login succeeded")
	return result, nil
}

// Register creates a new account. It does not establish a session.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body, err := c.postJSON(ctx, "/register", nil, registerRequest{Username: username, Email: email, Password: password}, false)
	if err != nil {
		return err
	}
	if _, err := decodeEnvelope(body); err != nil {
		return err
	}
	return nil
}

// ListContent retrieves the full content catalog. The order is
// server-defined and an empty catalog is not an error.
func (c *Client) ListContent(ctx context.Context) ([]Content, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/list_content", nil, nil, "", true)
	if err != nil {
		return nil, err
	}

	items, err := decodeContentList(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(items)).Msg("Retrieved content catalog")
	return items, nil
}

// AddContent creates a new content item referencing an already-uploaded
// media file. The server sometimes acknowledges with a non-JSON body; by
// default that still counts as success (see WithStrictAddAck).
func (c *Client) AddContent(ctx context.Context, title, description, filePath string) error {
	payload := contentRequest{Title: title, Description: description, FilePath: &filePath}
	body, err := c.postJSON(ctx, "/add_content", nil, payload, true)
	if err != nil {
		return err
	}

	if _, err := decodeEnvelope(body); err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) && c.lenientAddAck {
			c.logger.Debug().Msg("Treating non-JSON add_content acknowledgement as success")
			return nil
		}
		return err
	}
	return nil
}

// UpdateContent modifies an existing content item. A nil filePath omits the
// file_path key from the request body entirely, which leaves the stored
// media path untouched on the server.
func (c *Client) UpdateContent(ctx context.Context, id int, title, description string, filePath *string) error {
	params := url.Values{"id": {strconv.Itoa(id)}}
	payload := contentRequest{Title: title, Description: description, FilePath: filePath}
	body, err := c.postJSON(ctx, "/update_content", params, payload, true)
	if err != nil {
		return err
	}
	if _, err := decodeEnvelope(body); err != nil {
		return err
	}
	return nil
}

// DeleteContent removes a content item. The server expects a GET with the
// id in the query string; this verb asymmetry is part of the fixed contract.
func (c *Client) DeleteContent(ctx context.Context, id int) error {
	params := url.Values{"id": {strconv.Itoa(id)}}
	body, err := c.doRequest(ctx, http.MethodGet, "/delete_content", params, nil, "", true)
	if err != nil {
		return err
	}
	if _, err := decodeEnvelope(body); err != nil {
		return err
	}

	c.logger.Info().Int("id", id).Msg("Deleted content item")
	return nil
}

// UploadVideo streams src to the server as a multipart body with a single
// part named "video" and returns the server-assigned file path. At most one
// attempt is made; retrying is the caller's decision.
//
// src is read from a background goroutine. Closing the body unblocks a
// pending pipe write but not a Read already in progress, so src must not
// block indefinitely: a source whose Read never returns leaves that
// goroutine lingering after a transport failure. File and bytes readers
// are fine.
func (c *Client) UploadVideo(ctx context.Context, src io.Reader, filename string) (string, error) {
	token, ok := c.session.Token()
	if !ok {
		return "", ErrNotAuthenticated
	}

	tracked := &readTracker{r: src}
	body, contentType := encodeMultipart(UploadPart{
		FieldName: "video",
		FileName:  filename,
		MimeType:  c.uploadMimeType,
		Body:      tracked,
	}, nil)
	defer body.Close()

	requestURL := c.baseURL + "/api/upload_video"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().Str("filename", filename).Msg("Uploading video")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if rerr := tracked.readErr(); rerr != nil {
			return "", &UploadError{Kind: UploadErrorIO, Message: "failed to read video source", Err: rerr}
		}
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	filePath, err := decodeUploadResponse(data)
	if err != nil {
		return "", err
	}

	c.logger.Info().Str("file_path", filePath).Msg("Video uploaded")
	return filePath, nil
}

// StreamURL composes the playback URL for a content item. This is pure
// string composition; the resource is fetched by the playback surface, not
// by this client.
func (c *Client) StreamURL(id int) string {
	return fmt.Sprintf("%s/api/stream?id=%d", c.baseURL, id)
}
