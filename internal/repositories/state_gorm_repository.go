package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateRecord is one row of the state_records table.
type StateRecord struct {
	Key       string `gorm:"column:state_key;primaryKey;type:varchar(255)"`
	Value     []byte
	UpdatedAt time.Time
}

// GORMStateRepository is a GORM implementation of StateRepository.
type GORMStateRepository struct {
	db *gorm.DB
}

// NewGORMStateRepository creates a new instance of GORMStateRepository.
func NewGORMStateRepository(db *gorm.DB) *GORMStateRepository {
	return &GORMStateRepository{
		db: db,
	}
}

// Load retrieves the value stored under key.
func (r *GORMStateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var record StateRecord
	if err := r.db.WithContext(ctx).First(&record, "state_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("key %s: %w", key, ErrStateNotFound)
		}
		return nil, fmt.Errorf("failed to load state %s: %w", key, err)
	}
	return record.Value, nil
}

// Save inserts or replaces the value stored under key.
func (r *GORMStateRepository) Save(ctx context.Context, key string, value []byte) error {
	record := StateRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save state %s: %w", key, err)
	}
	return nil
}

// Delete removes the record under key.
func (r *GORMStateRepository) Delete(ctx context.Context, key string) error {
	res := r.db.WithContext(ctx).Delete(&StateRecord{}, "state_key = ?", key)
	if res.Error != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("key %s: %w", key, ErrStateNotFound)
	}
	return nil
}
