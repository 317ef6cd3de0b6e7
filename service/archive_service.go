package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Archiver keeps a copy of imported files.
type Archiver interface {
	// Put stores body and returns a URL for it.
	Put(ctx context.Context, filename, contentType string, body []byte) (string, error)
}

// S3Config holds the settings of an S3-compatible bucket.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is the path-style base of returned URLs. Defaults to
	// Endpoint, or to the bucket's virtual-hosted AWS URL without one.
	PublicURL string
}

// S3Archiver implements Archiver with an S3-compatible object store.
type S3Archiver struct {
	client s3iface.S3API
	bucket string
	// objectURL is prepended to keys in returned URLs.
	objectURL string
}

// NewS3Archiver creates an archiver from cfg.
func NewS3Archiver(cfg S3Config) (*S3Archiver, error) {
	if cfg.Region == "" || cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("missing required S3 configuration")
	}
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return &S3Archiver{client: s3.New(sess), bucket: cfg.Bucket, objectURL: objectBaseURL(cfg)}, nil
}

// NewS3ArchiverWithClient wraps an existing S3 client. Returned URLs are
// path-style under publicURL.
func NewS3ArchiverWithClient(client s3iface.S3API, bucket, publicURL string) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket, objectURL: pathStyleURL(publicURL, bucket)}
}

func objectBaseURL(cfg S3Config) string {
	switch {
	case cfg.PublicURL != "":
		return pathStyleURL(cfg.PublicURL, cfg.Bucket)
	case cfg.Endpoint != "":
		return pathStyleURL(cfg.Endpoint, cfg.Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

func pathStyleURL(base, bucket string) string {
	return strings.TrimRight(base, "/") + "/" + bucket
}

// Put uploads body under imports/<uuid>-<filename>.
func (a *S3Archiver) Put(ctx context.Context, filename, contentType string, body []byte) (string, error) {
	key := fmt.Sprintf("imports/%s-%s", uuid.NewString(), filepath.Base(filename))
	if contentType == "" {
		contentType = "text/plain"
	}
	_, err := a.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	url := a.objectURL + "/" + key
	log.Info().Str("url", url).Msg("[S3Archiver] File archived")
	return url, nil
}
