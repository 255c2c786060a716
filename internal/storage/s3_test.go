package storage

import (
	"errors"
	"testing"
)

func TestNewS3Uploader(t *testing.T) {
	if _, err := NewS3Uploader(S3Config{}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}

	u, err := NewS3Uploader(S3Config{Bucket: "logos", Region: "sa-east-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := u.URL("/barbershops/1/logo.webp"); got != "https://logos.s3.sa-east-1.amazonaws.com/barbershops/1/logo.webp" {
		t.Fatalf("unexpected url %q", got)
	}

	u, _ = NewS3Uploader(S3Config{Bucket: "logos", Endpoint: "http://minio:9000", PublicURL: "https://cdn.example.com/"})
	if got := u.URL("a.webp"); got != "https://cdn.example.com/a.webp" {
		t.Fatalf("unexpected url %q", got)
	}
}
