package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOOptions configures MinIO
type MinIOOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is the externally reachable base of the endpoint, defaults to the endpoint itself
	PublicURL string
}

// MinIO stores files in an S3 compatible bucket with anonymous read access
type MinIO struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// normaliseEndpoint accepts "minio:9000" or "http(s)://minio:9000"
func normaliseEndpoint(raw string) (endpoint string, secure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, fmt.Errorf("empty endpoint")
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, err
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint")
		}
		if u.Path != "" && u.Path != "/" {
			return "", false, fmt.Errorf("endpoint must not contain a path")
		}
		return u.Host, u.Scheme == "https", nil
	}

	// host:port without a scheme is plain http
	return raw, false, nil
}

// NewMinIO creates a MinIO store. The bucket is created on first upload when missing.
func NewMinIO(opts MinIOOptions) (*MinIO, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("minio configuration incomplete")
	}

	endpoint, secure, err := normaliseEndpoint(opts.Endpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	publicURL := strings.TrimRight(opts.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if secure {
			scheme = "https"
		}
		publicURL = scheme + "://" + endpoint
	}

	return &MinIO{client: client, bucket: opts.Bucket, publicURL: publicURL}, nil
}

// Name implements Store
func (m *MinIO) Name() string {
	return "minio"
}

func (m *MinIO) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return &UpstreamError{Step: "bucket", Err: err}
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return &UpstreamError{Step: "bucket", Err: err}
	}

	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, m.bucket)
	if err := m.client.SetBucketPolicy(ctx, m.bucket, policy); err != nil {
		log.Printf("Failed to set public read policy on bucket %s: %v", m.bucket, err)
	}
	return nil
}

// Upload implements Store
func (m *MinIO) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := m.ensureBucket(ctx); err != nil {
		return "", err
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := m.client.PutObject(ctx, m.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", &UpstreamError{Step: "upload", Err: err}
	}

	return m.objectURL(name), nil
}

func (m *MinIO) objectURL(name string) string {
	return m.publicURL + "/" + m.bucket + "/" + url.PathEscape(name)
}

// Delete implements Store
func (m *MinIO) Delete(ctx context.Context, name string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return &UpstreamError{Step: "delete", Err: err}
	}
	return nil
}

// Ping implements Store
func (m *MinIO) Ping(ctx context.Context) error {
	if _, err := m.client.BucketExists(ctx, m.bucket); err != nil {
		return &UpstreamError{Step: "ping", Err: err}
	}
	return nil
}
