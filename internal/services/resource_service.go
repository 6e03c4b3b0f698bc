package services

import (
	"context"

	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"github.com/franciscosanchezn/gin-relief-api/internal/store"
)

// ResourceService provides CRUD over one document collection
type ResourceService interface {
	// List retrieves every document in the collection
	List(ctx context.Context) ([]models.Document, error)
	// Create stores the document as sent and returns the insert acknowledgment
	Create(ctx context.Context, doc models.Document) (models.InsertResult, error)
	// Get returns the document or nil when none matches
	Get(ctx context.Context, id string) (models.Document, error)
	// Update overwrites every updatable field, clearing those doc does not carry
	Update(ctx context.Context, id string, doc models.Document) (models.UpdateResult, error)
	// Delete removes the document
	Delete(ctx context.Context, id string) (models.DeleteResult, error)
}

type resourceService struct {
	docs       store.DocumentRepository
	collection string
	updatable  []string
}

// NewResourceService serves collection. updatable whitelists the fields Update writes;
// nil allows none.
func NewResourceService(docs store.DocumentRepository, collection string, updatable []string) ResourceService {
	return &resourceService{docs: docs, collection: collection, updatable: updatable}
}

func (s *resourceService) List(ctx context.Context) ([]models.Document, error) {
	return s.docs.FindAll(ctx, s.collection)
}

func (s *resourceService) Create(ctx context.Context, doc models.Document) (models.InsertResult, error) {
	return s.docs.Insert(ctx, s.collection, doc)
}

func (s *resourceService) Get(ctx context.Context, id string) (models.Document, error) {
	return s.docs.FindByID(ctx, s.collection, id)
}

func (s *resourceService) Update(ctx context.Context, id string, doc models.Document) (models.UpdateResult, error) {
	return s.docs.UpdateByID(ctx, s.collection, id, doc.Pick(s.updatable))
}

func (s *resourceService) Delete(ctx context.Context, id string) (models.DeleteResult, error) {
	return s.docs.DeleteByID(ctx, s.collection, id)
}
