package models

import "fmt"

// IDField is the key every stored document keeps its identifier under
const IDField = "_id"

// Collection names shared by every store implementation
const (
	CollectionUsers       = "users"
	CollectionSupplies    = "supplies"
	CollectionDonors      = "donors"
	CollectionCommunities = "communities"
	CollectionVolunteers  = "volunteers"
)

// Document is a schema-flexible JSON object persisted as the client sent it
type Document map[string]interface{}

// ID returns the identifier as a string, or "" when the document has none
func (d Document) ID() string {
	switch id := d[IDField].(type) {
	case nil:
		return ""
	case string:
		return id
	case interface{ Hex() string }:
		return id.Hex()
	case fmt.Stringer:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}

// Pick returns every field listed in fields with its value in d. A listed field d lacks
// is set to nil, so overwriting with the result clears it.
func (d Document) Pick(fields []string) Document {
	picked := make(Document, len(fields))
	for _, field := range fields {
		picked[field] = d[field]
	}
	return picked
}

// InsertResult acknowledges a single insert
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult acknowledges a single update. A zero MatchedCount is not an error.
type UpdateResult struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

// DeleteResult acknowledges a single delete
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
