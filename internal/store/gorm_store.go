package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"gorm.io/gorm"
)

// documentRecord holds one document of any collection as a JSON body
type documentRecord struct {
	ID         string `gorm:"primaryKey;size:24"`
	Collection string `gorm:"index;size:64;not null"`
	Body       string `gorm:"type:text;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRecord) TableName() string {
	return "documents"
}

// GormStore keeps users in their own table and every other collection in a shared
// documents table. Open the gorm.DB with TranslateError so unique violations surface
// as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps an open gorm connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates the users and documents tables and the unique email index
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(&models.User{}, &documentRecord{})
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = NewID()
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		user.ID = ""
		if isDuplicateKey(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *GormStore) Insert(ctx context.Context, collection string, doc models.Document) (models.InsertResult, error) {
	record := documentRecord{ID: NewID(), Collection: collection}
	body, err := json.Marshal(withoutID(doc))
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("encode document: %w", err)
	}
	record.Body = string(body)

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return models.InsertResult{}, fmt.Errorf("insert into %s: %w", collection, err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: record.ID}, nil
}

func (s *GormStore) FindAll(ctx context.Context, collection string) ([]models.Document, error) {
	var records []documentRecord
	if err := s.db.WithContext(ctx).Where("collection = ?", collection).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}

	docs := make([]models.Document, 0, len(records))
	for _, record := range records {
		doc, err := record.decode()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *GormStore) FindByID(ctx context.Context, collection, id string) (models.Document, error) {
	if _, err := ParseID(id); err != nil {
		return nil, err
	}

	record, err := findRecord(s.db.WithContext(ctx), collection, id)
	if err != nil || record == nil {
		return nil, err
	}
	return record.decode()
}

func (s *GormStore) UpdateByID(ctx context.Context, collection, id string, fields models.Document) (models.UpdateResult, error) {
	if _, err := ParseID(id); err != nil {
		return models.UpdateResult{}, err
	}

	result := models.UpdateResult{Acknowledged: true}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := findRecord(tx, collection, id)
		if err != nil || record == nil {
			return err
		}
		result.MatchedCount = 1

		doc := models.Document{}
		if err := json.Unmarshal([]byte(record.Body), &doc); err != nil {
			return fmt.Errorf("decode document %s: %w", id, err)
		}
		for key, value := range withoutID(fields) {
			doc[key] = value
		}
		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode document %s: %w", id, err)
		}

		// json.Marshal sorts map keys, so equal bytes mean nothing changed
		if bytes.Equal(body, canonical(record.Body)) {
			return nil
		}
		if err := tx.Model(record).Update("body", string(body)).Error; err != nil {
			return fmt.Errorf("update document %s: %w", id, err)
		}
		result.ModifiedCount = 1
		return nil
	})
	if err != nil {
		return models.UpdateResult{}, err
	}
	return result, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, collection, id string) (models.DeleteResult, error) {
	if _, err := ParseID(id); err != nil {
		return models.DeleteResult{}, err
	}

	res := s.db.WithContext(ctx).Where("id = ? AND collection = ?", id, collection).Delete(&documentRecord{})
	if res.Error != nil {
		return models.DeleteResult{}, fmt.Errorf("delete document %s: %w", id, res.Error)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func findRecord(db *gorm.DB, collection, id string) (*documentRecord, error) {
	var record documentRecord
	if err := db.Where("id = ? AND collection = ?", id, collection).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find document %s: %w", id, err)
	}
	return &record, nil
}

func (r documentRecord) decode() (models.Document, error) {
	doc := models.Document{}
	if err := json.Unmarshal([]byte(r.Body), &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", r.ID, err)
	}
	doc[models.IDField] = r.ID
	return doc, nil
}

// canonical re-encodes a stored body so it compares byte for byte with a fresh encoding
func canonical(body string) []byte {
	var v interface{}
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return []byte(body)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return []byte(body)
	}
	return out
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
