// Package streaming provides a client for the streaming platform HTTP API.
//
// The platform exposes authentication, a content catalog with CRUD
// operations for administrators, video upload, and media streaming. This
// package implements the full wire protocol: JSON request/response bodies,
// multipart video uploads, query-string identifiers, and bearer-token
// authentication backed by a persisted session.
//
// # Architecture
//
//   - Client: the API client, one method per server capability
//   - Types: domain models (Content, LoginResult, Role)
//   - Codec: translation between wire bytes and typed values
//   - Multipart: streamed multipart/form-data upload bodies
//   - Errors: structured error types for better error handling
//
// # Usage
//
// Create a client with the server URL and a session manager:
//
//	sess, err := session.Load(session.DefaultPath())
//	if err != nil {
//		log.Fatal(err)
//	}
//	client, err := streaming.NewClient(
//		"https://stream.example.com",
//		sess,
//		logger,
//		streaming.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if _, err := client.Login(ctx, "user@example.com", "secret"); err != nil {
//		log.Fatal(streaming.Message(err))
//	}
//	items, err := client.ListContent(ctx)
//
// # Error Handling
//
// All failures are normalized into a small taxonomy before they reach the
// caller:
//
//   - TransportError: the request never produced a response
//   - StatusError: the server answered with a non-2xx status
//   - ServerError: a 2xx payload carried an explicit error field
//   - DecodeError: the payload could not be parsed
//   - UploadError: an upload failed reading its source or server-side
//
// Message converts any of these into a short human-readable string, so
// callers never branch on raw status codes:
//
//	if err != nil {
//		fmt.Println(streaming.Message(err))
//	}
//
// Every operation is attempted exactly once per invocation; the client has
// no built-in retries.
package streaming
