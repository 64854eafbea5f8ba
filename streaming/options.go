package streaming

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout        time.Duration
	httpClient     *http.Client
	userAgent      string
	uploadMimeType string
	lenientAddAck  bool
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:        30 * time.Second,
		userAgent:      "streamctl",
		uploadMimeType: "video/mp4",
		lenientAddAck:  true,
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithUploadMimeType sets the Content-Type announced for uploaded video
// parts. Defaults to video/mp4.
func WithUploadMimeType(mimeType string) Option {
	return func(o *clientOptions) {
		o.uploadMimeType = mimeType
	}
}

// WithStrictAddAck disables the lenient add_content acknowledgement
// handling. By default the server is allowed to answer add_content with a
// non-JSON body, which the client counts as success; with this option such
// a body is reported as a parsing failure instead.
func WithStrictAddAck() Option {
	return func(o *clientOptions) {
		o.lenientAddAck = false
	}
}
