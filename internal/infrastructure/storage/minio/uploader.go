package minio

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/pkg/errors"
)

const fpContentType = "text/tab-separated-values"

// Uploader copies each finished output file to
// <bucket>/<prefix>/<runID>/<basename>.
type Uploader struct {
	client *MinIOClient
	logger logging.Logger
}

// NewUploader returns an uploader writing through client.
func NewUploader(client *MinIOClient, log logging.Logger) *Uploader {
	if log == nil {
		log = logging.Default()
	}
	return &Uploader{client: client, logger: log}
}

func (u *Uploader) Name() string { return "minio" }

// ObjectKey returns the key outputPath is stored under for runID.
func (u *Uploader) ObjectKey(runID, outputPath string) string {
	prefix := strings.Trim(u.client.config.Prefix, "/")
	return path.Join(prefix, runID, filepath.Base(outputPath))
}

// Export uploads outputPath.
func (u *Uploader) Export(ctx context.Context, runID, outputPath string) error {
	if err := u.client.EnsureBucket(ctx); err != nil {
		return err
	}

	cfg := u.client.config
	key := u.ObjectKey(runID, outputPath)
	info, err := u.client.client.FPutObject(ctx, cfg.Bucket, key, outputPath, minio.PutObjectOptions{
		ContentType: fpContentType,
		PartSize:    cfg.PartSize,
		UserMetadata: map[string]string{
			"run-id": runID,
			"source": outputPath,
		},
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to upload output file").
			WithDetail(cfg.Bucket + "/" + key)
	}

	u.logger.Debug("Uploaded output file",
		logging.String("bucket", cfg.Bucket),
		logging.String("key", key),
		logging.Int64("size", info.Size),
	)
	return nil
}

// Close releases the client.
func (u *Uploader) Close() error {
	return u.client.Close()
}

//Personal.AI order the ending
