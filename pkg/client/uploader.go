package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Uploader pushes media to the CDN boundary and returns the stored asset's
// uuid, the only piece of the upload response the rest of the app consumes.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// HTTPUploader is the multipart REST implementation of Uploader.
type HTTPUploader struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewHTTPUploader(endpoint, token string, httpClient *http.Client) *HTTPUploader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPUploader{endpoint: endpoint, token: token, httpClient: httpClient}
}

func (u *HTTPUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if u.token != "" {
		req.Header.Set("Authorization", "Bearer "+u.token)
	}

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	var decoded struct {
		UUID string `json:"uuid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	return decoded.UUID, nil
}
