// Package storage provides object storage for raw webhook payloads.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/fulfillment-router/internal/domain/integration"
	infraconfig "github.com/erp/fulfillment-router/internal/infrastructure/config"
)

var _ integration.PayloadArchive = (*S3PayloadArchive)(nil)

// S3PayloadArchive stores raw webhook bodies in an S3-compatible bucket
// (AWS S3, MinIO, RustFS). Keys are laid out as
// {prefix}/{shop}/{topic}/{yyyy}/{mm}/{dd}/{delivery id}.json
type S3PayloadArchive struct {
	client *s3.Client
	bucket string
	prefix string
	now    func() time.Time
	logger *zap.Logger
}

// S3PayloadArchiveOption is a functional option for S3PayloadArchive
type S3PayloadArchiveOption func(*S3PayloadArchive)

// WithLogger sets a custom logger
func WithLogger(logger *zap.Logger) S3PayloadArchiveOption {
	return func(a *S3PayloadArchive) {
		a.logger = logger
	}
}

// WithClock replaces the time source used for key dates
func WithClock(now func() time.Time) S3PayloadArchiveOption {
	return func(a *S3PayloadArchive) {
		a.now = now
	}
}

// NewS3PayloadArchive creates an archive from configuration
func NewS3PayloadArchive(cfg *infraconfig.ArchiveConfig, opts ...S3PayloadArchiveOption) (*S3PayloadArchive, error) {
	if cfg == nil {
		return nil, errors.New("archive configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("archive bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("archive access key and secret key are required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	archive := &S3PayloadArchive{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(archive)
	}
	return archive, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup.
func (a *S3PayloadArchive) EnsureBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	a.logger.Info("Creating archive bucket", zap.String("bucket", a.bucket))
	_, err = a.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(a.bucket)})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Store uploads the payload and returns its object key
func (a *S3PayloadArchive) Store(ctx context.Context, delivery integration.WebhookDelivery, payload []byte) (string, error) {
	key := a.Key(delivery)

	metadata := map[string]string{
		"payload-mode": delivery.Mode.String(),
	}
	if delivery.APIVersion != "" {
		metadata["api-version"] = delivery.APIVersion
	}
	if delivery.ID != "" {
		metadata["webhook-id"] = delivery.ID
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
		Metadata:    metadata,
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive payload %s: %w", key, err)
	}
	return key, nil
}

// Key derives the object key of a delivery. Deliveries without an ID get a random one.
func (a *S3PayloadArchive) Key(delivery integration.WebhookDelivery) string {
	id := delivery.ID
	if id == "" {
		id = uuid.NewString()
	}
	shop := keySegment(delivery.ShopDomain, "unknown-shop")
	topic := keySegment(strings.ReplaceAll(delivery.Topic, "/", "_"), "unknown-topic")
	date := a.now().UTC().Format("2006/01/02")

	return path.Join(a.prefix, shop, topic, date, keySegment(id, "delivery")+".json")
}

// Bucket returns the bucket name
func (a *S3PayloadArchive) Bucket() string {
	return a.bucket
}

func keySegment(s, fallback string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "/", "_"))
	if s == "" || s == "." || s == ".." {
		return fallback
	}
	return s
}

// NoopPayloadArchive discards payloads; used when archiving is disabled
type NoopPayloadArchive struct{}

// Store returns an empty key
func (NoopPayloadArchive) Store(context.Context, integration.WebhookDelivery, []byte) (string, error) {
	return "", nil
}

var _ integration.PayloadArchive = NoopPayloadArchive{}
