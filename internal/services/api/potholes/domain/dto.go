package domain

import "time"

// list window bounds
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// LocationInput carries coordinates as pointers so a literal 0 is distinguishable from absent
type LocationInput struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90" example:"40.7128"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180" example:"-74.006"`
	Address   string   `json:"address,omitempty" example:"5th Ave & W 23rd St"`
}

// CreateInput is the body of a new detection
type CreateInput struct {
	Location   *LocationInput `json:"location" validate:"required"`
	VideoURL   string         `json:"videoUrl" validate:"required" example:"s3://dashcam/2024-05-01/clip-0042.mp4"`
	FrameTime  *float64       `json:"frameTime,omitempty" example:"12.48"`
	Confidence *float64       `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1" example:"0.87"`
	Metadata   Metadata       `json:"metadata,omitempty"`
}

// UpdateInput carries the mutable fields; absent fields are left untouched
type UpdateInput struct {
	Status   *Status  `json:"status,omitempty" validate:"omitempty,oneof=new verified fixed" example:"verified"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Empty reports whether no field was supplied
func (in UpdateInput) Empty() bool { return in.Status == nil && len(in.Metadata) == 0 }

// ListInput filters and windows a listing
// Limit 0 means DefaultLimit
type ListInput struct {
	Status Status
	Skip   int
	Limit  int
}

// ListFilter is a normalized ListInput as handed to storage
type ListFilter struct {
	Status Status
	Skip   int
	Limit  int
}

// Changes is the set of fields an update writes
type Changes struct {
	Status    *Status
	Metadata  Metadata
	UpdatedAt time.Time
}

// Fields names the supplied fields, in a stable order
func (c Changes) Fields() []string {
	var out []string
	if c.Status != nil {
		out = append(out, "status")
	}
	if len(c.Metadata) > 0 {
		out = append(out, "metadata")
	}
	return out
}
