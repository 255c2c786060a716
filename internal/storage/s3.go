package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrDisabled = errors.New("storage_disabled")

// Uploader grava um objeto e devolve a URL pública.
type Uploader interface {
	Put(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // MinIO / R2; vazio = AWS
	AccessKey string
	SecretKey string
	PublicURL string
}

type S3Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Uploader devolve (nil, ErrDisabled) quando não há bucket configurado.
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrDisabled
	}

	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Uploader{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}, nil
}

func (u *S3Uploader) Put(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("public, max-age=86400"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return u.URL(key), nil
}

func (u *S3Uploader) URL(key string) string {
	return u.publicURL + "/" + strings.TrimLeft(key, "/")
}
