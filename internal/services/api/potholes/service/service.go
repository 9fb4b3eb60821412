// Package service contains pothole record workflows
package service

import (
	"context"
	"strings"

	"potholes/internal/modkit/repokit"
	perr "potholes/internal/platform/errors"
	"potholes/internal/platform/logger"
	"potholes/internal/platform/metrics"
	"potholes/internal/platform/net/http/bind"
	pstrings "potholes/internal/platform/strings"
	ptime "potholes/internal/platform/time"
	"potholes/internal/services/api/potholes/domain"
)

// Service defines the pothole service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the pothole service
type Svc struct {
	Repo    domain.Repo
	now     ptime.Clock
	metrics *metrics.Metrics
}

// Option tunes a Svc
type Option func(*Svc)

// WithClock pins the time source
func WithClock(c ptime.Clock) Option { return func(s *Svc) { s.now = c } }

// WithMetrics counts created and updated records
func WithMetrics(m *metrics.Metrics) Option { return func(s *Svc) { s.metrics = m } }

// New constructs a pothole service
func New(repo domain.Repo, opts ...Option) *Svc {
	if repo == nil {
		panic("potholes.Service requires a non nil Repo")
	}
	s := &Svc{Repo: repo}
	for _, o := range opts {
		o(s)
	}
	s.now = s.now.OrNow()
	return s
}

// Create validates in and stores a new record with status new
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Pothole, error) {
	if err := bind.Struct(in); err != nil {
		return domain.Pothole{}, err
	}
	if pstrings.IsBlank(in.VideoURL) {
		return domain.Pothole{}, perr.WithField(perr.Validationf("videoUrl is required"), "videoUrl")
	}
	if err := in.Metadata.Validate(); err != nil {
		return domain.Pothole{}, err
	}

	now := s.now()
	p, err := s.Repo.Insert(ctx, domain.Pothole{
		Location: domain.Location{
			Latitude:  *in.Location.Latitude,
			Longitude: *in.Location.Longitude,
			Address:   pstrings.Clean(in.Location.Address),
		},
		VideoURL:   strings.TrimSpace(in.VideoURL),
		FrameTime:  in.FrameTime,
		Confidence: in.Confidence,
		Status:     domain.StatusNew,
		DetectedAt: now,
		Metadata:   in.Metadata,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return domain.Pothole{}, err
	}

	s.metrics.RecordCreated()
	logger.C(ctx).Debug().Str("id", p.ID).Msg("pothole created")
	return p, nil
}

// FindByID returns one record
func (s *Svc) FindByID(ctx context.Context, id string) (domain.Pothole, error) {
	if !repokit.ValidID(id) {
		return domain.Pothole{}, perr.WithField(perr.Validationf(repokit.MsgInvalidID), "id")
	}
	return s.Repo.FindByID(ctx, strings.TrimSpace(id))
}

// List returns records newest first, optionally filtered by status
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Pothole, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, perr.WithField(perr.Validationf("status must be one of [%s]", statusList()), "status")
	}
	if in.Skip < 0 {
		return nil, perr.WithField(perr.Validationf("skip must be 0 or greater"), "skip")
	}
	return s.Repo.List(ctx, domain.ListFilter{
		Status: in.Status,
		Skip:   in.Skip,
		Limit:  clampLimit(in.Limit),
	})
}

// UpdateByID applies the supplied status and metadata and bumps updatedAt
func (s *Svc) UpdateByID(ctx context.Context, id string, in domain.UpdateInput) (domain.Pothole, error) {
	if !repokit.ValidID(id) {
		return domain.Pothole{}, perr.WithField(perr.Validationf(repokit.MsgInvalidID), "id")
	}
	if in.Empty() {
		return domain.Pothole{}, domain.ErrNoChanges
	}
	if err := bind.Struct(in); err != nil {
		return domain.Pothole{}, err
	}
	if err := in.Metadata.Validate(); err != nil {
		return domain.Pothole{}, err
	}

	ch := domain.Changes{Status: in.Status, Metadata: in.Metadata, UpdatedAt: s.now()}
	p, err := s.Repo.Update(ctx, strings.TrimSpace(id), ch)
	if err != nil {
		return domain.Pothole{}, err
	}

	s.metrics.RecordUpdated(ch.Fields()...)
	logger.C(ctx).Debug().Str("id", p.ID).Strs("fields", ch.Fields()).Msg("pothole updated")
	return p, nil
}

// clampLimit maps 0 to the default and pins anything else into [1, MaxLimit]
func clampLimit(n int) int {
	switch {
	case n == 0:
		return domain.DefaultLimit
	case n < 1:
		return 1
	case n > domain.MaxLimit:
		return domain.MaxLimit
	}
	return n
}

func statusList() string {
	ss := domain.Statuses()
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return strings.Join(out, " ")
}
