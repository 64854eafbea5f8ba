package streaming

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UploadPart describes the single binary part of a multipart upload body
type UploadPart struct {
	FieldName string
	FileName  string
	MimeType  string
	Body      io.Reader
}

// newBoundary returns a boundary token that cannot collide with payload
// bytes: a random UUID combined with the current timestamp.
func newBoundary() string {
	return fmt.Sprintf("streamctl-%s-%d", uuid.NewString(), time.Now().UnixMilli())
}

// encodeMultipart assembles one binary part plus optional text fields into a
// streamed multipart/form-data body. The file bytes are piped through as
// they are read, so the whole file is never buffered in memory. A read
// failure on the source aborts the body; the consumer sees the error on its
// next read.
func encodeMultipart(part UploadPart, fields map[string]string) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	// SetBoundary only rejects malformed tokens; ours is fixed-shape.
	_ = mw.SetBoundary(newBoundary())

	go func() {
		err := writeMultipart(mw, part, fields)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	return pr, mw.FormDataContentType()
}

func writeMultipart(mw *multipart.Writer, part UploadPart, fields map[string]string) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, part.FieldName, part.FileName))
	header.Set("Content-Type", part.MimeType)

	w, err := mw.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, part.Body); err != nil {
		return err
	}

	// Deterministic field order keeps request bodies reproducible.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := mw.WriteField(name, fields[name]); err != nil {
			return err
		}
	}

	return nil
}

// readTracker records the first non-EOF read error from the wrapped source
// so an aborted upload can be classified as an I/O failure rather than a
// transport failure. Read runs on the pipe-writer goroutine while the error
// is inspected from the uploading goroutine, so the field is lock-guarded.
type readTracker struct {
	r io.Reader

	mu  sync.Mutex
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.mu.Lock()
		if t.err == nil {
			t.err = err
		}
		t.mu.Unlock()
	}
	return n, err
}

// readErr returns the recorded source read error, if any
func (t *readTracker) readErr() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}
