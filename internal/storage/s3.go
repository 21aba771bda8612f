// Package storage persists uploaded wardrobe images in an S3-compatible
// object store and hands back stable public URLs.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/closetly/wardrobe-api/internal/config"
)

// ErrUnsupportedImageType is returned when the uploaded bytes do not sniff
// as one of the accepted image encodings.
var ErrUnsupportedImageType = errors.New("unsupported image type")

// imageExtensions maps accepted sniffed content types to object key extensions.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MediaStore ingests uploaded images and returns stable reference URLs.
type MediaStore interface {
	// Upload stores the image under a fresh key inside folder and returns
	// its public URL. The content type is sniffed from the bytes, not
	// trusted from the request.
	Upload(ctx context.Context, folder string, body io.Reader) (string, error)

	// Delete removes a previously uploaded image by its public URL.
	Delete(ctx context.Context, url string) error
}

type s3MediaStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3MediaStore builds a MediaStore backed by an S3-compatible endpoint.
func NewS3MediaStore(ctx context.Context, cfg config.StorageConfig) (MediaStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &s3MediaStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (s *s3MediaStore) Upload(ctx context.Context, folder string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
	}

	key := objectKey(folder, ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return s.publicURL(key), nil
}

func (s *s3MediaStore) Delete(ctx context.Context, url string) error {
	key, err := s.keyFromURL(url)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	return err
}

func (s *s3MediaStore) publicURL(key string) string {
	return s.publicBaseURL + "/" + s.bucket + "/" + key
}

func (s *s3MediaStore) keyFromURL(url string) (string, error) {
	prefix := s.publicBaseURL + "/" + s.bucket + "/"

	key, found := strings.CutPrefix(url, prefix)
	if !found || key == "" {
		return "", fmt.Errorf("media url %q does not belong to bucket %q", url, s.bucket)
	}

	return key, nil
}

func objectKey(folder, ext string) string {
	return folder + "/" + uuid.NewString() + ext
}
