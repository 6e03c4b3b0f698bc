// Package store persists users and schema-flexible documents.
package store

import (
	"context"
	"errors"

	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a lookup matches nothing
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateKey is returned when an insert violates a unique index
	ErrDuplicateKey = errors.New("store: duplicate key")
	// ErrInvalidID is returned when an identifier is not a 24 character hex ObjectID
	ErrInvalidID = errors.New("store: invalid identifier")
)

// UserRepository stores registered accounts
type UserRepository interface {
	// CreateUser inserts the user and fills in its ID. Returns ErrDuplicateKey when the email is taken.
	CreateUser(ctx context.Context, user *models.User) error
	// FindUserByEmail returns ErrNotFound when no user has that email
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// DocumentRepository stores documents grouped in named collections
type DocumentRepository interface {
	Insert(ctx context.Context, collection string, doc models.Document) (models.InsertResult, error)
	FindAll(ctx context.Context, collection string) ([]models.Document, error)
	// FindByID returns a nil document and no error when nothing matches
	FindByID(ctx context.Context, collection, id string) (models.Document, error)
	// UpdateByID sets the given fields and leaves all others untouched
	UpdateByID(ctx context.Context, collection, id string, fields models.Document) (models.UpdateResult, error)
	DeleteByID(ctx context.Context, collection, id string) (models.DeleteResult, error)
}

// Store is a connected document store
type Store interface {
	UserRepository
	DocumentRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ParseID converts a path identifier into the store's native ObjectID
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// NewID returns a fresh identifier in hex form
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// withoutID copies doc minus its identifier so callers cannot overwrite _id
func withoutID(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for key, value := range doc {
		if key == models.IDField {
			continue
		}
		out[key] = value
	}
	return out
}
