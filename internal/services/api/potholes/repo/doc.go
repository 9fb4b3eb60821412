package repo

import (
	"time"

	perr "potholes/internal/platform/errors"
	"potholes/internal/services/api/potholes/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// field names as stored
const (
	fID         = "_id"
	fStatus     = "status"
	fDetectedAt = "detectedAt"
	fMetadata   = "metadata"
	fUpdatedAt  = "updatedAt"
)

type locationDoc struct {
	Latitude  float64 `bson:"latitude"`
	Longitude float64 `bson:"longitude"`
	Address   string  `bson:"address,omitempty"`
}

// potholeDoc is the stored shape; unknown fields such as __v are ignored on read
type potholeDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	Location   locationDoc        `bson:"location"`
	VideoURL   string             `bson:"videoUrl"`
	FrameTime  *float64           `bson:"frameTime,omitempty"`
	Confidence *float64           `bson:"confidence,omitempty"`
	Status     string             `bson:"status"`
	DetectedAt time.Time          `bson:"detectedAt"`
	Metadata   *bson.D            `bson:"metadata,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func toDoc(p domain.Pothole) (potholeDoc, error) {
	meta, err := metadataToBSON(p.Metadata)
	if err != nil {
		return potholeDoc{}, err
	}
	return potholeDoc{
		Location: locationDoc{
			Latitude:  p.Location.Latitude,
			Longitude: p.Location.Longitude,
			Address:   p.Location.Address,
		},
		VideoURL:   p.VideoURL,
		FrameTime:  p.FrameTime,
		Confidence: p.Confidence,
		Status:     string(p.Status),
		DetectedAt: p.DetectedAt,
		Metadata:   meta,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}, nil
}

func fromDoc(d potholeDoc) (domain.Pothole, error) {
	meta, err := metadataFromBSON(d.Metadata)
	if err != nil {
		return domain.Pothole{}, perr.Wrap(err, perr.ErrorCodeDB, "could not read pothole")
	}
	return domain.Pothole{
		ID: d.ID.Hex(),
		Location: domain.Location{
			Latitude:  d.Location.Latitude,
			Longitude: d.Location.Longitude,
			Address:   d.Location.Address,
		},
		VideoURL:   d.VideoURL,
		FrameTime:  d.FrameTime,
		Confidence: d.Confidence,
		Status:     domain.Status(d.Status),
		DetectedAt: d.DetectedAt.UTC(),
		Metadata:   meta,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}, nil
}

// metadataToBSON parses the raw JSON object into an ordered document
func metadataToBSON(m domain.Metadata) (*bson.D, error) {
	if len(m) == 0 {
		return nil, nil
	}
	var d bson.D
	if err := bson.UnmarshalExtJSON(m, false, &d); err != nil {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "metadata must be an object"), "metadata")
	}
	if d == nil {
		d = bson.D{}
	}
	return &d, nil
}

// metadataFromBSON renders the stored document back as relaxed extended JSON
// key order and values survive; number spelling does not (1e2 reads back as 100.0)
func metadataFromBSON(d *bson.D) (domain.Metadata, error) {
	if d == nil {
		return nil, nil
	}
	b, err := bson.MarshalExtJSON(*d, false, false)
	if err != nil {
		return nil, err
	}
	return domain.Metadata(b), nil
}
