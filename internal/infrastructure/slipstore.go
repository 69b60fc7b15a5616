package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"course-service/internal/config"
	"course-service/internal/domain"
)

// SlipStore keeps proof-of-payment images in an S3-compatible bucket.
// The payment record only carries the {key, url} reference.
type SlipStore struct {
	api      *s3.Client
	bucket   string
	endpoint string
}

func NewSlipStore(cfg *config.Config) (*SlipStore, error) {
	if cfg.S3Endpoint == "" {
		return nil, errors.New("S3_ENDPOINT is required")
	}
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil, errors.New("S3_ACCESS_KEY and S3_SECRET_KEY are required")
	}

	endpoint := cfg.S3Endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		scheme := "https"
		if cfg.S3DisableTLS {
			scheme = "http"
		}
		endpoint = fmt.Sprintf("%s://%s", scheme, endpoint)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &SlipStore{api: client, bucket: cfg.S3Bucket, endpoint: endpoint}, nil
}

// Upload stores one decoded slip image under a fresh key.
func (s *SlipStore) Upload(ctx context.Context, contentType string, data []byte) (domain.SlipImage, error) {
	key := uuid.NewString()
	size := int64(len(data))

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &s.bucket,
		Key:           &key,
		Body:          bytes.NewReader(data),
		ContentLength: &size,
		ContentType:   &contentType,
	})
	if err != nil {
		return domain.SlipImage{}, fmt.Errorf("slip upload: %w", err)
	}

	return domain.SlipImage{
		Key: key,
		URL: fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key),
	}, nil
}
