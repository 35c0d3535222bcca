package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
)

const storageErrorBodyLimit = 2048

type StorageService interface {
	UploadFile(ctx context.Context, content io.Reader, filename string, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

// SupabaseStorageService keeps illustration images in a public bucket.
type SupabaseStorageService struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

func NewSupabaseStorageService(baseURL, bucket, serviceKey string) *SupabaseStorageService {
	return &SupabaseStorageService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: http.DefaultClient,
	}
}

// UploadFile stores content under folder/filename and returns its public URL.
func (s *SupabaseStorageService) UploadFile(ctx context.Context, content io.Reader, filename string, folder string) (string, error) {
	objectPath := path.Join(strings.Trim(folder, "/"), filename)

	body, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(objectPath), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("x-upsert", "true")
	// Object names are random, so the content never changes under a URL.
	req.Header.Set("cache-control", "max-age=31536000")
	req.Header.Set("Content-Type", http.DetectContentType(body))

	if _, err := s.send(req, "upload file"); err != nil {
		return "", err
	}
	return s.publicURL(objectPath), nil
}

// DeleteFile removes an object previously returned by UploadFile. A missing
// object counts as deleted.
func (s *SupabaseStorageService) DeleteFile(ctx context.Context, fileURL string) error {
	objectPath, err := s.objectPathFromURL(fileURL)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(objectPath), nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	status, err := s.send(req, "delete file")
	if status == http.StatusNotFound {
		return nil
	}
	return err
}

// send authenticates req and turns any non-2xx answer into an error carrying
// the status and the start of the body.
func (s *SupabaseStorageService) send(req *http.Request, op string) (int, error) {
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, storageErrorBodyLimit))
		return resp.StatusCode, fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp.StatusCode, nil
}

func (s *SupabaseStorageService) objectURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, objectPath)
}

func (s *SupabaseStorageService) publicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
}

// objectPathFromURL accepts only public URLs of this project's bucket.
func (s *SupabaseStorageService) objectPathFromURL(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse storage url: %w", err)
	}
	if parsed.Host != base.Host {
		return "", errors.New("file url does not belong to the storage host")
	}

	prefix := strings.TrimRight(base.Path, "/") + "/storage/v1/object/public/" + s.bucket + "/"
	objectPath, ok := strings.CutPrefix(parsed.Path, prefix)
	if !ok || objectPath == "" {
		return "", errors.New("file url does not belong to configured bucket")
	}
	return objectPath, nil
}
