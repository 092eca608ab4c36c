package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists the inventory snapshot between sessions.
type Repository interface {
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
	Clear(ctx context.Context) error
}

// snapshotRow is the single-row storage shape: the whole counting
// session serialized as one JSON document under a fixed key, stamped
// with the schema version that wrote it.
type snapshotRow struct {
	SnapshotKey string    `gorm:"column:snapshot_key;primaryKey;size:64"`
	Version     string    `gorm:"column:version;size:16"`
	Data        []byte    `gorm:"column:data"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (snapshotRow) TableName() string {
	return "inventory_snapshots"
}

// GormRepository stores the snapshot through gorm.
type GormRepository struct {
	db      *gorm.DB
	key     string
	version string
	logger  *zap.Logger
}

// NewGormRepository migrates the snapshot table and returns the
// repository.
func NewGormRepository(db *gorm.DB, cfg Config, logger *zap.Logger) (*GormRepository, error) {
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrating inventory snapshot table: %w", err)
	}
	return &GormRepository{
		db:      db,
		key:     cfg.SnapshotKey,
		version: cfg.SchemaVersion,
		logger:  logger,
	}, nil
}

// Load reads the persisted snapshot. A snapshot written by a different
// schema version is discarded and the session starts empty; stale data
// silently reshaped would be worse than no data.
func (r *GormRepository) Load(ctx context.Context) ([]Record, error) {
	var row snapshotRow
	err := r.db.WithContext(ctx).First(&row, "snapshot_key = ?", r.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if row.Version != r.version {
		r.logger.Warn("Discarding inventory snapshot with mismatched version",
			zap.String("found", row.Version),
			zap.String("expected", r.version))
		if err := r.Clear(ctx); err != nil {
			r.logger.Error("Failed to drop stale inventory snapshot", zap.Error(err))
		}
		return nil, nil
	}

	var records []Record
	if err := json.Unmarshal(row.Data, &records); err != nil {
		r.logger.Warn("Discarding unreadable inventory snapshot", zap.Error(err))
		return nil, nil
	}
	return records, nil
}

// Save overwrites the snapshot row with the given records.
func (r *GormRepository) Save(ctx context.Context, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding inventory snapshot: %w", err)
	}
	row := snapshotRow{
		SnapshotKey: r.key,
		Version:     r.version,
		Data:        data,
		UpdatedAt:   time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

// Clear removes the snapshot row.
func (r *GormRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Delete(&snapshotRow{}, "snapshot_key = ?", r.key).Error
}
