package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"pos-kiosk-demo/internal/model"
)

const sessionsBucket = "sessions"

// boltStore persists sessions in an embedded bbolt file, one JSON value per key.
type boltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the bbolt file at path.
func NewBoltStore(path string) (Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &boltStore{db: db}, nil
}

func (b *boltStore) Get(_ context.Context, id string) (*model.Session, error) {
	var session *model.Session
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(sessionsBucket)).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (b *boltStore) Put(_ context.Context, session *model.Session) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return putSession(tx.Bucket([]byte(sessionsBucket)), session)
	})
}

func (b *boltStore) Update(_ context.Context, id string, upsert bool, fn MutateFunc) (*model.Session, error) {
	var session *model.Session
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionsBucket))
		data := bucket.Get([]byte(id))
		switch {
		case data != nil:
			if err := json.Unmarshal(data, &session); err != nil {
				return fmt.Errorf("unmarshaling session: %w", err)
			}
		case upsert:
			session = model.NewSession(id)
		default:
			return ErrNotFound
		}

		fn(session)
		return putSession(bucket, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (b *boltStore) Close() error {
	return b.db.Close()
}

func putSession(bucket *bbolt.Bucket, session *model.Session) error {
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	return bucket.Put([]byte(session.ID), data)
}
