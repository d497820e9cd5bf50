package rangka

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ambiyansyah-risyal/rangka/internal/chunk"
)

const uploadFieldName = "file"

// UploadFile reads filename into memory and POSTs it to path as a multipart
// form field named "file". Otherwise it follows the Request contract. Use
// StreamFile for large files.
func (c *Client) UploadFile(ctx context.Context, path, filename string, opts ...RequestOption) (*Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("rangka: cannot read upload file: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(uploadFieldName, filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	opts = append(opts, RawBody(&buf, w.FormDataContentType()))
	return c.Request(ctx, http.MethodPost, path, opts...)
}

// StreamFile POSTs the file content to path as the raw request body, read
// lazily in 64 KiB chunks. The chunk sequence is finite and non-restartable;
// a failed send is not replayed.
func (c *Client) StreamFile(ctx context.Context, path, filename string, opts ...RequestOption) (*Result, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("rangka: cannot open stream file: %w", err)
	}
	defer f.Close()

	opts = append(opts, RawBody(chunk.NewReader(f, chunk.DefaultSize), "application/octet-stream"))
	return c.Request(ctx, http.MethodPost, path, opts...)
}
