package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"stockcount/core/storage"
	"stockcount/feature/inventory"
)

// Format selects the report output.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for formats other than csv and xlsx.
var ErrUnknownFormat = errors.New("unknown export format")

// ErrUploadsDisabled is returned when no storage client is configured.
var ErrUploadsDisabled = errors.New("export uploads are disabled")

// Artifact is one rendered report.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service renders inventory reports and optionally uploads them to
// object storage.
type Service struct {
	store   *inventory.Store
	storage storage.Client
	bucket  string
	cfg     Config
	logger  *zap.Logger

	now func() time.Time
}

// NewService creates the export service. client may be nil, which
// disables uploads but not downloads.
func NewService(store *inventory.Store, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		storage: client,
		bucket:  bucket,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate renders the current inventory as a report in the given
// format.
func (s *Service) Generate(format Format) (*Artifact, error) {
	now := s.now()
	table := BuildTable(s.store.List(), s.cfg, now)
	stamp := now.Format("20060102_150405")

	switch format {
	case FormatCSV:
		data, err := WriteCSV(table, s.cfg.DelimiterRune())
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Filename:    fmt.Sprintf("stock_count_%s.csv", stamp),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	case FormatXLSX:
		data, err := WriteXLSX(table)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Filename:    fmt.Sprintf("stock_count_%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Upload stores an artifact in the export bucket and returns the object
// name. Object names carry a UUID so repeated exports never collide.
func (s *Service) Upload(ctx context.Context, artifact *Artifact) (string, error) {
	if s.storage == nil {
		return "", ErrUploadsDisabled
	}

	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("exports/%s_%s", uuid.New().String(), artifact.Filename)
	_, err := s.storage.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(artifact.Data), int64(len(artifact.Data)),
		minio.PutObjectOptions{ContentType: artifact.ContentType})
	if err != nil {
		return "", fmt.Errorf("uploading export: %w", err)
	}

	s.logger.Info("Export uploaded",
		zap.String("bucket", s.bucket),
		zap.String("object", objectName),
		zap.Int("bytes", len(artifact.Data)))
	return objectName, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.storage.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("checking export bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.storage.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("creating export bucket: %w", err)
	}
	return nil
}
