package rws

import (
	"context"
	"fmt"
	"net/http"

	"github.com/s3904419/go-rws/rws/transport"
)

// UploadFile writes a file to the controller file system at
// "{dir}/{name}", creating or replacing it. dir is relative to $HOME of the
// active system, e.g. "data".
func (c *Client) UploadFile(ctx context.Context, dir, name string, data []byte) error {
	if err := c.put(ctx, "/fileservice/"+dir+"/"+name, transport.ContentTypeOctetStream, data); err != nil {
		return fmt.Errorf("upload %s/%s: %w", dir, name, err)
	}
	c.debug("uploaded %s/%s (%d bytes)", dir, name, len(data))
	return nil
}

// DownloadFile reads a file from the controller file system.
func (c *Client) DownloadFile(ctx context.Context, dir, name string) ([]byte, error) {
	res, err := c.transport.Do(ctx, http.MethodGet, c.baseURL+"/fileservice/"+dir+"/"+name, "", nil)
	if err != nil {
		return nil, fmt.Errorf("download %s/%s: %w", dir, name, err)
	}
	if err := checkStatus(res, http.StatusOK); err != nil {
		return nil, fmt.Errorf("download %s/%s: %w", dir, name, err)
	}
	return res.Body, nil
}

// RemoveFile deletes a file from the controller file system.
func (c *Client) RemoveFile(ctx context.Context, dir, name string) error {
	if err := c.delete(ctx, "/fileservice/"+dir+"/"+name); err != nil {
		return fmt.Errorf("remove %s/%s: %w", dir, name, err)
	}
	c.debug("removed %s/%s", dir, name)
	return nil
}
