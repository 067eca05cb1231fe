package api

import (
	"context"
	"io"
	"net/http"

	"github.com/Adda-Baaj/nievex-client/pkg/httpclient"
)

// UploadFile sends r to the CDN as the multipart field "file" and returns the
// service's response body.
func (c *Client) UploadFile(ctx context.Context, name string, r io.Reader) (Payload, error) {
	if r == nil {
		return nil, &Error{Op: "upload", Method: http.MethodPost, Path: uploadPath, Err: ErrNilFile}
	}
	c.log.InfoObj("starting file upload", "upload", map[string]any{"file_name": name})

	payload, err := c.do(ctx, "upload", http.MethodPost, uploadPath, uploadTimeout, func(ctx context.Context) (httpclient.Response, error) {
		return c.api.PostMultipart(ctx, uploadPath, httpclient.FilePart{
			Field:    "file",
			FileName: name,
			Reader:   r,
		})
	})
	if err != nil {
		c.log.ErrorObj("upload failed", "upload_error", map[string]any{
			"file_name": name,
			"error":     err.Error(),
		})
		return nil, err
	}

	c.log.InfoObj("upload successful", "upload_response", payload)
	return payload, nil
}
