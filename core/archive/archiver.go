package archive

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver pushes run artifacts into the configured bucket.
type Archiver struct {
	client Client
	bucket string
	logger *zap.Logger
}

// New creates an archiver writing to the given bucket.
func New(client Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, logger: logger}
}

var contentTypes = map[string]string{
	".json": "application/json",
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// StoreRun uploads the given local files under runs/<date>/<runID>/.
// The bucket is created on first use. Missing local files are an error;
// the caller decides whether a failed archive fails the run.
func (a *Archiver) StoreRun(ctx context.Context, runID string, refDate time.Time, files ...string) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("archive: check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("archive: create bucket %s: %w", a.bucket, err)
		}
	}

	prefix := path.Join("runs", refDate.Format("2006-01-02"), runID)

	for _, file := range files {
		if err := a.put(ctx, prefix, file); err != nil {
			return err
		}
	}
	return nil
}

func (a *Archiver) put(ctx context.Context, prefix, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("archive: open %s: %w", file, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("archive: stat %s: %w", file, err)
	}

	objectName := path.Join(prefix, filepath.Base(file))
	opts := minio.PutObjectOptions{
		ContentType: contentTypes[filepath.Ext(file)],
	}

	if _, err := a.client.PutObject(ctx, a.bucket, objectName, f, info.Size(), opts); err != nil {
		return fmt.Errorf("archive: upload %s: %w", objectName, err)
	}

	a.logger.Info("Archived run artifact",
		zap.String("bucket", a.bucket),
		zap.String("object", objectName),
		zap.Int64("bytes", info.Size()),
	)
	return nil
}
