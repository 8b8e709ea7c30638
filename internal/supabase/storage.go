package supabase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// publicURLMarker is the fixed segment of the storage service's public URL
// scheme. PathFromPublicURL depends on it to reverse-derive object paths.
const publicURLMarker = "/storage/v1/object/public/"

// StorageError carries the storage service's failure message.
type StorageError struct {
	Status  int
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}

// StorageClient talks to the hosted object storage service.
type StorageClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewStorageClient(baseURL, apiKey string) *StorageClient {
	return &StorageClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores an object under bucket/path.
func (c *StorageClient) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	url := c.baseURL + "/storage/v1/object/" + bucket + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StorageError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	return nil
}

// Remove deletes an object. Callers treat failures as non-fatal.
func (c *StorageClient) Remove(ctx context.Context, bucket, path string) error {
	url := c.baseURL + "/storage/v1/object/" + bucket + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StorageError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	return nil
}

// PublicURL derives the public URL of an object.
func (c *StorageClient) PublicURL(bucket, path string) string {
	return c.baseURL + publicURLMarker + bucket + "/" + path
}

// PathFromPublicURL reverses PublicURL: it returns the object path encoded in
// a public URL, or "" when the URL does not carry the expected marker.
func PathFromPublicURL(url, bucket string) string {
	parts := strings.SplitN(url, publicURLMarker+bucket+"/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// ObjectPath builds the date-bucketed upload path for a file:
// <prefix>/<YYYY-MM>/<epoch-ms>_<filename>. The timestamp prefix keeps names
// collision-resistant within a month folder.
func ObjectPath(prefix, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%04d-%02d/%d_%s", prefix, now.Year(), int(now.Month()), now.UnixMilli(), filename)
}
