// Package minio uploads finished .fp files to MinIO or any S3-compatible
// object store.
package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
)

// MinIOAPI is the subset of *minio.Client used here.
type MinIOAPI interface {
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketLifecycle(ctx context.Context, bucketName string, config *lifecycle.Configuration) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// minioNew is replaced in tests.
var minioNew = func(endpoint string, opts *minio.Options) (MinIOAPI, error) {
	return minio.New(endpoint, opts)
}

type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Region          string
	Bucket          string
	// Prefix is prepended to every object key.
	Prefix string
	// PartSize is the multipart chunk size for large files.
	PartSize uint64
	// ExpireDays adds a lifecycle rule expiring objects under Prefix; 0
	// keeps them forever.
	ExpireDays     int
	ConnectTimeout time.Duration
}

type MinIOClient struct {
	client MinIOAPI
	config *MinIOConfig
	logger logging.Logger

	mu      sync.Mutex
	ensured bool
}

// NewMinIOClient creates the client and verifies the endpoint by listing
// buckets.  The target bucket is created on first upload.
func NewMinIOClient(cfg *MinIOConfig, log logging.Logger) (*MinIOClient, error) {
	applyDefaults(cfg)
	if log == nil {
		log = logging.Default()
	}

	api, err := minioNew(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create minio client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	if _, err := api.ListBuckets(ctx); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSinkNotConnected, "failed to connect to minio").
			WithDetail(cfg.Endpoint)
	}

	log.Info("MinIO client connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
		logging.Bool("ssl", cfg.UseSSL),
	)
	return newMinIOClientWithAPI(api, cfg, log), nil
}

func newMinIOClientWithAPI(api MinIOAPI, cfg *MinIOConfig, log logging.Logger) *MinIOClient {
	applyDefaults(cfg)
	if log == nil {
		log = logging.Default()
	}
	return &MinIOClient{client: api, config: cfg, logger: log}
}

func applyDefaults(cfg *MinIOConfig) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "computefp"
	}
	if cfg.PartSize == 0 {
		cfg.PartSize = 16 * 1024 * 1024
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
}

// EnsureBucket creates the configured bucket when it does not exist and
// installs the expiry rule on creation.  Only the first successful call
// talks to the server.
func (c *MinIOClient) EnsureBucket(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ensured {
		return nil
	}

	bucket := c.config.Bucket
	exists, err := c.client.BucketExists(ctx, bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to check bucket existence").WithDetail(bucket)
	}
	if !exists {
		if err := c.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: c.config.Region}); err != nil {
			return errors.Wrap(err, errors.ErrCodeExportFailed, fmt.Sprintf("failed to create bucket %s", bucket))
		}
		c.logger.Info("Created bucket", logging.String("bucket", bucket))
		if c.config.ExpireDays > 0 {
			c.setExpiry(ctx)
		}
	}
	c.ensured = true
	return nil
}

// setExpiry is best effort; a store without lifecycle support still gets
// the uploads.
func (c *MinIOClient) setExpiry(ctx context.Context) {
	cfg := lifecycle.NewConfiguration()
	cfg.Rules = []lifecycle.Rule{
		{
			ID:         "computefp-expiry",
			Status:     "Enabled",
			RuleFilter: lifecycle.Filter{Prefix: c.config.Prefix},
			Expiration: lifecycle.Expiration{Days: lifecycle.ExpirationDays(c.config.ExpireDays)},
		},
	}
	if err := c.client.SetBucketLifecycle(ctx, c.config.Bucket, cfg); err != nil {
		c.logger.Warn("Failed to set bucket lifecycle",
			logging.String("bucket", c.config.Bucket),
			logging.Err(err),
		)
	}
}

// Close is a no-op; the minio client holds no long-lived connections.
func (c *MinIOClient) Close() error {
	return nil
}

//Personal.AI order the ending
