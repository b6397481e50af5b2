package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pos-kiosk-demo/internal/model"
)

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store. The sessions table must already be migrated.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := s.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return &session, nil
}

func (s *gormStore) Put(ctx context.Context, session *model.Session) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"scanned", "handoff_complete", "amount", "app_ready", "updated_at"}),
	}).Create(session).Error
	if err != nil {
		return fmt.Errorf("failed to upsert session %s: %w", session.ID, err)
	}
	return nil
}

func (s *gormStore) Update(ctx context.Context, id string, upsert bool, fn MutateFunc) (*model.Session, error) {
	var result model.Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var session model.Session
		err := q.First(&session, "id = ?", id).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if !upsert {
				return ErrNotFound
			}
			session = *model.NewSession(id)
			fn(&session)
			if err := tx.Create(&session).Error; err != nil {
				return fmt.Errorf("failed to create session %s: %w", id, err)
			}
		case err != nil:
			return fmt.Errorf("failed to load session %s: %w", id, err)
		default:
			fn(&session)
			if err := tx.Save(&session).Error; err != nil {
				return fmt.Errorf("failed to save session %s: %w", id, err)
			}
		}
		result = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
