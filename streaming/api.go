package streaming

import (
	"context"
	"io"
)

// API defines the interface for streaming platform operations
type API interface {
	// Login authenticates and stores the resulting session
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Register creates a new account
	Register(ctx context.Context, username, email, password string) error

	// ListContent retrieves the full content catalog
	ListContent(ctx context.Context) ([]Content, error)

	// AddContent creates a new content item
	AddContent(ctx context.Context, title, description, filePath string) error

	// UpdateContent modifies an existing content item
	UpdateContent(ctx context.Context, id int, title, description string, filePath *string) error

	// DeleteContent removes a content item
	DeleteContent(ctx context.Context, id int) error

	// UploadVideo uploads a video file and returns its server path
	UploadVideo(ctx context.Context, src io.Reader, filename string) (string, error)

	// StreamURL composes the playback URL for a content item
	StreamURL(id int) string
}

var _ API = (*Client)(nil)
