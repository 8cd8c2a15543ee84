package postgres

import (
	"context"
	"errors"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordStorage struct {
	db *gorm.DB
}

func NewRecordStorage(db *gorm.DB) *RecordStorage {
	return &RecordStorage{
		db: db,
	}
}

// Create is a function that creates a new code record in the database.
func (s *RecordStorage) Create(ctx context.Context, record *entity.CodeRecord) (*entity.CodeRecord, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	err := s.db.WithContext(ctx).Create(record).Error
	return record, err
}

// Get is a function that gets a code record from the database by id.
func (s *RecordStorage) Get(ctx context.Context, id string) (*entity.CodeRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errorz.ErrRecordNotFound
	}
	var record entity.CodeRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorz.ErrRecordNotFound
	}
	return &record, err
}

// GetByUser is a function that gets the code records of a user, newest first.
func (s *RecordStorage) GetByUser(ctx context.Context, userID int64) ([]entity.CodeRecord, error) {
	var records []entity.CodeRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&records).Error
	return records, err
}

// Update is a function that updates a code record in the database.
func (s *RecordStorage) Update(ctx context.Context, record *entity.CodeRecord) (*entity.CodeRecord, error) {
	err := s.db.WithContext(ctx).Save(record).Error
	return record, err
}
