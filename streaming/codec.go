package streaming

import "encoding/json"

// envelope mirrors the loosely shaped JSON object the server returns for
// most endpoints. Fields not relevant to a given endpoint are simply absent.
type envelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Role    string `json:"role"`
	Token   string `json:"token"`
	ID      *int   `json:"id"`
}

// decodeEnvelope parses a response body. A top-level error field signals a
// server-reported failure regardless of HTTP status; an unparsable body is a
// DecodeError, never the raw parse failure.
func decodeEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{}
	}
	if env.Error != "" {
		return nil, &ServerError{Message: env.Error}
	}
	return &env, nil
}

// loginResult maps a login envelope to its typed result, applying the
// documented defaults: a missing role means "user", a missing token means "".
func (env *envelope) loginResult() *LoginResult {
	role := Role(env.Role)
	if role == "" {
		role = RoleUser
	}
	return &LoginResult{Role: role, Token: env.Token}
}

// decodeContentList parses a list_content response. The server returns a
// bare JSON array; an empty array is a valid, empty catalog. When the body
// is not an array, a server-reported error is surfaced if present.
func decodeContentList(body []byte) ([]Content, error) {
	var items []Content
	if err := json.Unmarshal(body, &items); err != nil {
		if _, envErr := decodeEnvelope(body); envErr != nil {
			return nil, envErr
		}
		return nil, &DecodeError{}
	}
	if items == nil {
		items = []Content{}
	}
	return items, nil
}

// decodeUploadResponse parses an upload_video confirmation payload
func decodeUploadResponse(body []byte) (string, error) {
	var ur uploadResponse
	if err := json.Unmarshal(body, &ur); err != nil {
		return "", &DecodeError{}
	}
	if !ur.Success {
		msg := ur.Error
		if msg == "" {
			msg = "upload failed"
		}
		return "", &UploadError{Kind: UploadErrorServer, Message: msg}
	}
	return ur.FilePath, nil
}
