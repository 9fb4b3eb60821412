// Package repo provides mongo access for pothole records
package repo

import (
	"context"
	"errors"

	"potholes/internal/modkit/repokit"
	perr "potholes/internal/platform/errors"
	mongox "potholes/internal/platform/store/mongo"
	"potholes/internal/services/api/potholes/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type (
	// Mongo is a binder that binds the repo to a collection
	Mongo struct{}
	// collection implements domain.Repo
	collection struct{ col repokit.Collection }
)

// NewMongo returns a binder that can bind the repo to a collection
func NewMongo() repokit.Binder[domain.Repo] { return Mongo{} }

// Bind wires a collection to the repo
func (Mongo) Bind(c repokit.Collection) domain.Repo { return &collection{col: c} }

// Indexes backs the newest first listing, with and without a status filter
func Indexes() []mongox.Index {
	return []mongox.Index{
		{Name: "detectedAt_desc", Keys: bson.D{{Key: fDetectedAt, Value: -1}}},
		{Name: "status_detectedAt", Keys: bson.D{{Key: fStatus, Value: 1}, {Key: fDetectedAt, Value: -1}}},
	}
}

// listSort is newest first; _id breaks ties so pages are stable
var listSort = bson.D{{Key: fDetectedAt, Value: -1}, {Key: fID, Value: -1}}

func (r *collection) Insert(ctx context.Context, p domain.Pothole) (domain.Pothole, error) {
	d, err := toDoc(p)
	if err != nil {
		return domain.Pothole{}, err
	}
	d.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return domain.Pothole{}, perr.WithOp(perr.FromMongo(err, "could not save pothole"), "potholes.insert")
	}
	return fromDoc(d)
}

func (r *collection) FindByID(ctx context.Context, id string) (domain.Pothole, error) {
	oid, err := repokit.ObjectID(id)
	if err != nil {
		return domain.Pothole{}, err
	}
	var d potholeDoc
	if err := r.col.FindOne(ctx, bson.D{{Key: fID, Value: oid}}).Decode(&d); err != nil {
		return domain.Pothole{}, notFoundOr(err, "could not load pothole", "potholes.find")
	}
	return fromDoc(d)
}

func (r *collection) List(ctx context.Context, f domain.ListFilter) ([]domain.Pothole, error) {
	filter := bson.D{}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: fStatus, Value: string(f.Status)})
	}
	page := repokit.Page{Skip: int64(f.Skip), Limit: int64(f.Limit), Sort: listSort}

	cur, err := r.col.Find(ctx, filter, page.FindOptions())
	if err != nil {
		return nil, perr.WithOp(perr.FromMongo(err, "could not list potholes"), "potholes.list")
	}
	var docs []potholeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, perr.WithOp(perr.FromMongo(err, "could not list potholes"), "potholes.list")
	}

	out := make([]domain.Pothole, 0, len(docs))
	for _, d := range docs {
		p, err := fromDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *collection) Update(ctx context.Context, id string, c domain.Changes) (domain.Pothole, error) {
	oid, err := repokit.ObjectID(id)
	if err != nil {
		return domain.Pothole{}, err
	}

	set := bson.D{{Key: fUpdatedAt, Value: c.UpdatedAt}}
	if c.Status != nil {
		set = append(set, bson.E{Key: fStatus, Value: string(*c.Status)})
	}
	if len(c.Metadata) > 0 {
		meta, err := metadataToBSON(c.Metadata)
		if err != nil {
			return domain.Pothole{}, err
		}
		set = append(set, bson.E{Key: fMetadata, Value: *meta})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d potholeDoc
	err = r.col.FindOneAndUpdate(ctx, bson.D{{Key: fID, Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&d)
	if err != nil {
		return domain.Pothole{}, notFoundOr(err, "could not update pothole", "potholes.update")
	}
	return fromDoc(d)
}

// notFoundOr maps a missing document to the domain error and anything else to a storage error
func notFoundOr(err error, msg, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return perr.WithOp(perr.FromMongo(err, msg), op)
}
