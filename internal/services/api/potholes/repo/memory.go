package repo

import (
	"context"
	"sort"
	"sync"

	"potholes/internal/modkit/repokit"
	"potholes/internal/services/api/potholes/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in process domain.Repo with the same ordering and error behaviour as the mongo repo
// handlers and services are tested against it
type Memory struct {
	mu   sync.Mutex
	rows map[string]domain.Pothole
	fail error
}

// NewMemory returns an empty Memory repo
func NewMemory() *Memory { return &Memory{rows: map[string]domain.Pothole{}} }

// FailWith makes every call return err until called again with nil
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	m.fail = err
	m.mu.Unlock()
}

// Len reports how many records are stored
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *Memory) Insert(_ context.Context, p domain.Pothole) (domain.Pothole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return domain.Pothole{}, m.fail
	}
	p.ID = primitive.NewObjectID().Hex()
	p.Metadata = clone(p.Metadata)
	m.rows[p.ID] = p
	return p, nil
}

func (m *Memory) FindByID(_ context.Context, id string) (domain.Pothole, error) {
	oid, err := repokit.ObjectID(id)
	if err != nil {
		return domain.Pothole{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return domain.Pothole{}, m.fail
	}
	p, ok := m.rows[oid.Hex()]
	if !ok {
		return domain.Pothole{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *Memory) List(_ context.Context, f domain.ListFilter) ([]domain.Pothole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}

	out := make([]domain.Pothole, 0, len(m.rows))
	for _, p := range m.rows {
		if f.Status == "" || p.Status == f.Status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DetectedAt.Equal(out[j].DetectedAt) {
			return out[i].DetectedAt.After(out[j].DetectedAt)
		}
		return out[i].ID > out[j].ID
	})

	if f.Skip >= len(out) {
		return []domain.Pothole{}, nil
	}
	out = out[f.Skip:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *Memory) Update(_ context.Context, id string, c domain.Changes) (domain.Pothole, error) {
	oid, err := repokit.ObjectID(id)
	if err != nil {
		return domain.Pothole{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return domain.Pothole{}, m.fail
	}
	p, ok := m.rows[oid.Hex()]
	if !ok {
		return domain.Pothole{}, domain.ErrNotFound
	}
	if c.Status != nil {
		p.Status = *c.Status
	}
	if len(c.Metadata) > 0 {
		p.Metadata = clone(c.Metadata)
	}
	p.UpdatedAt = c.UpdatedAt
	m.rows[p.ID] = p
	return p, nil
}

func clone(m domain.Metadata) domain.Metadata {
	if m == nil {
		return nil
	}
	return append(domain.Metadata(nil), m...)
}
