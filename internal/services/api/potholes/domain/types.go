// Package domain holds the pothole record model and the ports around it
package domain

import (
	"bytes"
	"encoding/json"
	"time"

	perr "potholes/internal/platform/errors"
)

// Status is the lifecycle state of a detection
type Status string

// record lifecycle
const (
	StatusNew      Status = "new"
	StatusVerified Status = "verified"
	StatusFixed    Status = "fixed"
)

// Statuses lists the closed set in lifecycle order
func Statuses() []Status { return []Status{StatusNew, StatusVerified, StatusFixed} }

// Valid reports whether s is in the closed set
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusVerified, StatusFixed:
		return true
	}
	return false
}

// Location is where a pothole was seen
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Pothole is one stored detection
type Pothole struct {
	ID         string    `json:"id"`
	Location   Location  `json:"location"`
	VideoURL   string    `json:"videoUrl"`
	FrameTime  *float64  `json:"frameTime,omitempty"`
	Confidence *float64  `json:"confidence,omitempty"`
	Status     Status    `json:"status"`
	DetectedAt time.Time `json:"detectedAt"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Metadata is a free form JSON object kept byte for byte, so key order survives
type Metadata []byte

var errMetadataNotObject = perr.WithField(perr.Validationf("metadata must be an object"), "metadata")

// MarshalJSON writes the stored object as is
func (m Metadata) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return m, nil
}

// UnmarshalJSON keeps a copy of the raw object; null clears it
func (m *Metadata) UnmarshalJSON(b []byte) error {
	t := bytes.TrimSpace(b)
	if bytes.Equal(t, []byte("null")) {
		*m = nil
		return nil
	}
	if len(t) == 0 || t[0] != '{' {
		return errMetadataNotObject
	}
	*m = append((*m)[:0], t...)
	return nil
}

// Validate accepts an absent value or a well formed JSON object
func (m Metadata) Validate() error {
	if len(m) == 0 {
		return nil
	}
	t := bytes.TrimSpace(m)
	if len(t) == 0 || t[0] != '{' || !json.Valid(t) {
		return errMetadataNotObject
	}
	return nil
}
