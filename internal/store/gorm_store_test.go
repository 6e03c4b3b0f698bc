package store

import (
	"context"
	"sync"
	"testing"

	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *GormStore {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection to :memory: would be a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s := NewGormStore(db)
	require.NoError(t, s.AutoMigrate())
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestGormStoreCreateAndFindUser(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash"}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.Len(t, user.ID, 24)

	found, err := s.FindUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "Ada", found.Name)
	assert.Equal(t, "hash", found.Password)
}

func TestGormStoreFindUserMissing(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.FindUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreEmailIsCaseSensitive(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "ada@example.com", Password: "h"}))

	_, err := s.FindUserByEmail(ctx, "ADA@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreDuplicateEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "dup@example.com", Password: "h"}))

	second := &models.User{Email: "dup@example.com", Password: "h"}
	err := s.CreateUser(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Empty(t, second.ID)
}

func TestGormStoreConcurrentDuplicateEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.CreateUser(ctx, &models.User{Email: "race@example.com", Password: "h"})
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateKey)
	}
	assert.Equal(t, 1, created)
}

func TestGormStoreDocumentLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	inserted, err := s.Insert(ctx, models.CollectionSupplies, models.Document{
		"title": "Rice", "price": 12.5, "tags": []interface{}{"food"},
	})
	require.NoError(t, err)
	assert.True(t, inserted.Acknowledged)

	doc, err := s.FindByID(ctx, models.CollectionSupplies, inserted.InsertedID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, inserted.InsertedID, doc.ID())
	assert.Equal(t, "Rice", doc["title"])
	assert.Equal(t, 12.5, doc["price"])
	assert.Equal(t, []interface{}{"food"}, doc["tags"])

	updated, err := s.UpdateByID(ctx, models.CollectionSupplies, inserted.InsertedID, models.Document{"title": "Brown rice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.MatchedCount)
	assert.Equal(t, int64(1), updated.ModifiedCount)

	doc, err = s.FindByID(ctx, models.CollectionSupplies, inserted.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "Brown rice", doc["title"])
	assert.Equal(t, 12.5, doc["price"])

	deleted, err := s.DeleteByID(ctx, models.CollectionSupplies, inserted.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.DeletedCount)

	doc, err = s.FindByID(ctx, models.CollectionSupplies, inserted.InsertedID)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestGormStoreInsertIgnoresClientID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	inserted, err := s.Insert(ctx, models.CollectionDonors, models.Document{"_id": "mine", "name": "Bo"})
	require.NoError(t, err)
	assert.NotEqual(t, "mine", inserted.InsertedID)

	doc, err := s.FindByID(ctx, models.CollectionDonors, inserted.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, inserted.InsertedID, doc.ID())
}

func TestGormStoreUpdateWithSameValues(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	inserted, err := s.Insert(ctx, models.CollectionSupplies, models.Document{"title": "Rice", "price": 3.0})
	require.NoError(t, err)

	updated, err := s.UpdateByID(ctx, models.CollectionSupplies, inserted.InsertedID, models.Document{"title": "Rice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.MatchedCount)
	assert.Equal(t, int64(0), updated.ModifiedCount)
}

func TestGormStoreMissingDocument(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	missing := NewID()

	doc, err := s.FindByID(ctx, models.CollectionSupplies, missing)
	require.NoError(t, err)
	assert.Nil(t, doc)

	updated, err := s.UpdateByID(ctx, models.CollectionSupplies, missing, models.Document{"title": "x"})
	require.NoError(t, err)
	assert.True(t, updated.Acknowledged)
	assert.Equal(t, int64(0), updated.MatchedCount)

	deleted, err := s.DeleteByID(ctx, models.CollectionSupplies, missing)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted.DeletedCount)
}

func TestGormStoreInvalidID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.FindByID(ctx, models.CollectionSupplies, "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = s.UpdateByID(ctx, models.CollectionSupplies, "not-an-id", models.Document{})
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = s.DeleteByID(ctx, models.CollectionSupplies, "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestGormStoreCollectionsAreIsolated(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Insert(ctx, models.CollectionVolunteers, models.Document{"n": i})
		require.NoError(t, err)
	}
	donor, err := s.Insert(ctx, models.CollectionDonors, models.Document{"name": "Bo"})
	require.NoError(t, err)

	volunteers, err := s.FindAll(ctx, models.CollectionVolunteers)
	require.NoError(t, err)
	assert.Len(t, volunteers, 3)

	donors, err := s.FindAll(ctx, models.CollectionDonors)
	require.NoError(t, err)
	assert.Len(t, donors, 1)

	// a donor id does not resolve in another collection
	doc, err := s.FindByID(ctx, models.CollectionSupplies, donor.InsertedID)
	require.NoError(t, err)
	assert.Nil(t, doc)

	empty, err := s.FindAll(ctx, models.CollectionCommunities)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestGormStorePing(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
