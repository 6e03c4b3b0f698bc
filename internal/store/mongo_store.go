package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore keeps each collection in the MongoDB collection of the same name
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore uses database dbName on an already connected client
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(dbName)}
}

// EnsureIndexes creates the unique email index that makes registration atomic
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(models.CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	oid := primitive.NewObjectID()
	_, err := s.db.Collection(models.CollectionUsers).InsertOne(ctx, bson.D{
		{Key: "_id", Value: oid},
		{Key: "name", Value: user.Name},
		{Key: "email", Value: user.Email},
		{Key: "password", Value: user.Password},
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = oid.Hex()
	return nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(models.CollectionUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc models.Document) (models.InsertResult, error) {
	oid := primitive.NewObjectID()
	m := bson.M(withoutID(doc))
	m[models.IDField] = oid

	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		return models.InsertResult{}, fmt.Errorf("insert into %s: %w", collection, err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: oid.Hex()}, nil
}

func (s *MongoStore) FindAll(ctx context.Context, collection string) ([]models.Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("read %s cursor: %w", collection, err)
	}

	docs := make([]models.Document, 0, len(results))
	for _, m := range results {
		docs = append(docs, fromBSON(m))
	}
	return docs, nil
}

func (s *MongoStore) FindByID(ctx context.Context, collection, id string) (models.Document, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var m bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find document %s: %w", id, err)
	}
	return fromBSON(m), nil
}

func (s *MongoStore) UpdateByID(ctx context.Context, collection, id string, fields models.Document) (models.UpdateResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	filter := bson.M{"_id": oid}
	set := bson.M(withoutID(fields))

	// MongoDB rejects an empty $set, so report the match without writing
	if len(set) == 0 {
		matched, err := s.db.Collection(collection).CountDocuments(ctx, filter)
		if err != nil {
			return models.UpdateResult{}, fmt.Errorf("count document %s: %w", id, err)
		}
		return models.UpdateResult{Acknowledged: true, MatchedCount: matched}, nil
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update document %s: %w", id, err)
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, collection, id string) (models.DeleteResult, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}

	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete document %s: %w", id, err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// fromBSON converts a decoded document and renders its ObjectID as hex
func fromBSON(m bson.M) models.Document {
	doc := models.Document(m)
	if _, ok := doc[models.IDField]; ok {
		doc[models.IDField] = doc.ID()
	}
	return doc
}
