package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSupabaseStorageUploadAndDelete(t *testing.T) {
	var uploadedPath, uploadedBody, deletedPath, authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		switch r.Method {
		case http.MethodPost:
			uploadedPath = r.URL.Path
			body, _ := io.ReadAll(r.Body)
			uploadedBody = string(body)
		case http.MethodDelete:
			deletedPath = r.URL.Path
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	storage := NewSupabaseStorageService(server.URL+"/", "atlas", "service-key")

	fileURL, err := storage.UploadFile(context.Background(), strings.NewReader("png-bytes"), "abc.png", "/illustrations/")
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if uploadedPath != "/storage/v1/object/atlas/illustrations/abc.png" {
		t.Fatalf("unexpected upload path %q", uploadedPath)
	}
	if uploadedBody != "png-bytes" {
		t.Fatalf("unexpected upload body %q", uploadedBody)
	}
	if authHeader != "Bearer service-key" {
		t.Fatalf("unexpected auth header %q", authHeader)
	}
	if want := server.URL + "/storage/v1/object/public/atlas/illustrations/abc.png"; fileURL != want {
		t.Fatalf("expected public url %q, got %q", want, fileURL)
	}

	if err := storage.DeleteFile(context.Background(), fileURL); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if deletedPath != "/storage/v1/object/atlas/illustrations/abc.png" {
		t.Fatalf("unexpected delete path %q", deletedPath)
	}
}

func TestSupabaseStorageUploadReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusBadRequest)
	}))
	defer server.Close()

	storage := NewSupabaseStorageService(server.URL, "atlas", "key")
	_, err := storage.UploadFile(context.Background(), strings.NewReader("x"), "a.png", "illustrations")
	if err == nil || !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestSupabaseStorageDeleteRejectsForeignURL(t *testing.T) {
	storage := NewSupabaseStorageService("https://example.supabase.co", "atlas", "key")

	foreign := []string{
		"https://example.supabase.co/storage/v1/object/public/other/a.png",
		"https://elsewhere.supabase.co/storage/v1/object/public/atlas/a.png",
		"https://example.supabase.co/storage/v1/object/public/atlas/",
	}
	for _, fileURL := range foreign {
		if err := storage.DeleteFile(context.Background(), fileURL); err == nil {
			t.Errorf("expected error for %q", fileURL)
		}
	}
}

func TestSupabaseStorageDeleteMissingObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	storage := NewSupabaseStorageService(server.URL, "atlas", "key")
	if err := storage.DeleteFile(context.Background(), server.URL+"/storage/v1/object/public/atlas/illustrations/gone.png"); err != nil {
		t.Fatalf("expected a missing object to count as deleted, got %v", err)
	}
}
