package streaming

// Role represents the server-assigned role of the logged-in user
type Role string

const (
	// RoleUser is the default role for authenticated users
	RoleUser Role = "user"
	// RoleAdmin grants content management capabilities
	RoleAdmin Role = "admin"
)

// IsAdmin checks whether the role grants content management capabilities
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// LoginResult holds the identity established by a successful login
type LoginResult struct {
	Role  Role
	Token string
}

// Content represents a single streamable media record.
//
// ID is nil before the item has been persisted by the server. FilePath,
// ThumbnailURL and Category are optional and nil when the server omits them.
type Content struct {
	ID           *int    `json:"id,omitempty"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	FilePath     *string `json:"file_path,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	Category     *string `json:"category,omitempty"`
}

// HasFile reports whether the item has a media asset attached
func (c Content) HasFile() bool {
	return c.FilePath != nil && *c.FilePath != ""
}

// loginRequest is the wire shape for /api/login
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the wire shape for /api/register
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// contentRequest is the wire shape for add_content and update_content.
// FilePath is a pointer so an absent path omits the file_path key entirely;
// the server leaves its stored value untouched when the key is missing.
type contentRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	FilePath    *string `json:"file_path,omitempty"`
}

// uploadResponse is the confirmation payload returned by /api/upload_video
type uploadResponse struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path"`
	Error    string `json:"error"`
}
