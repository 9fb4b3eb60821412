// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"strings"

	perr "potholes/internal/platform/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the document collection handle repos bind to
type Collection = *mongo.Collection

// MsgInvalidID is the client facing message for a malformed identifier
const MsgInvalidID = "Invalid ID"

// ValidID reports whether id is a 24 char hex ObjectID
func ValidID(id string) bool {
	return primitive.IsValidObjectID(strings.TrimSpace(id))
}

// ObjectID parses id or returns a validation error on the id field
func ObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, perr.WithField(perr.Validationf(MsgInvalidID), "id")
	}
	return oid, nil
}

// Page is an offset window over a sorted result set
type Page struct {
	Skip  int64
	Limit int64
	Sort  bson.D
}

// FindOptions renders the page as driver find options
// zero Skip and Limit are left unset so the server defaults apply
func (p Page) FindOptions() *options.FindOptions {
	o := options.Find()
	if len(p.Sort) > 0 {
		o.SetSort(p.Sort)
	}
	if p.Skip > 0 {
		o.SetSkip(p.Skip)
	}
	if p.Limit > 0 {
		o.SetLimit(p.Limit)
	}
	return o
}
