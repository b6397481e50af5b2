package store

import (
	"context"
	"database/sql/driver"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pos-kiosk-demo/internal/db"
	"pos-kiosk-demo/internal/model"
)

func newSQLiteStore(t *testing.T) Store {
	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sessions.sqlite")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return NewGormStore(gormDB)
}

func newBoltTestStore(t *testing.T) Store {
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	return s
}

func backends() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore(0) },
		"bolt":   newBoltTestStore,
		"sqlite": newSQLiteStore,
	}
}

func amount(v float64) *float64 { return &v }

func TestStoreContract(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("Get missing returns ErrNotFound", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				_, err := s.Get(ctx, "missing")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("Put then Get round trips and overwrites", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				require.NoError(t, s.Put(ctx, &model.Session{ID: "a", Scanned: true, Amount: amount(5)}))
				require.NoError(t, s.Put(ctx, &model.Session{ID: "a", Amount: amount(7.5)}))

				got, err := s.Get(ctx, "a")
				require.NoError(t, err)
				assert.False(t, got.Scanned)
				require.NotNil(t, got.Amount)
				assert.InDelta(t, 7.5, *got.Amount, 1e-9)
			})

			t.Run("Update without upsert requires an existing session", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				called := false
				_, err := s.Update(ctx, "nope", false, func(*model.Session) { called = true })
				assert.ErrorIs(t, err, ErrNotFound)
				assert.False(t, called)
			})

			t.Run("Update with upsert creates defaults then applies fn", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				got, err := s.Update(ctx, "b", true, func(sess *model.Session) { sess.Scanned = true })
				require.NoError(t, err)
				assert.Equal(t, model.Status{Scanned: true}, got.Status())

				stored, err := s.Get(ctx, "b")
				require.NoError(t, err)
				assert.Equal(t, model.Status{Scanned: true}, stored.Status())
			})

			t.Run("Update keeps existing fields", func(t *testing.T) {
				s := open(t)
				defer s.Close()

				require.NoError(t, s.Put(ctx, &model.Session{ID: "c", Amount: amount(1)}))
				_, err := s.Update(ctx, "c", false, func(sess *model.Session) { sess.AppReady = true })
				require.NoError(t, err)

				stored, err := s.Get(ctx, "c")
				require.NoError(t, err)
				assert.True(t, stored.AppReady)
				require.NotNil(t, stored.Amount)
				assert.InDelta(t, 1.0, *stored.Amount, 1e-9)
			})
		})
	}
}

func TestMemoryStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, &model.Session{ID: "n", Amount: amount(0)}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, "n", false, func(sess *model.Session) { *sess.Amount += 1 })
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, "n")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, *got.Amount, 1e-9)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, &model.Session{ID: "x", Amount: amount(3)}))

	got, err := s.Get(ctx, "x")
	require.NoError(t, err)
	*got.Amount = 99
	got.Scanned = true

	again, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, *again.Amount, 1e-9)
	assert.False(t, again.Scanned)
}

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_GetNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "sessions" WHERE id = $1`)).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_PutUpserts(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sessions"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT ("id") DO UPDATE SET`)).
		WithArgs("s1", false, false, Any{}, false, Any{}, Any{}).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.Put(context.Background(), &model.Session{ID: "s1", Amount: amount(7.5)})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
