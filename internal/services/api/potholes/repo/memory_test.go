package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "potholes/internal/platform/errors"
	"potholes/internal/services/api/potholes/domain"
)

var _ domain.Repo = (*Memory)(nil)

func TestMemory_ListOrderingAndWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	a, _ := m.Insert(ctx, domain.Pothole{Status: domain.StatusNew, DetectedAt: base})
	b, _ := m.Insert(ctx, domain.Pothole{Status: domain.StatusFixed, DetectedAt: base})
	c, _ := m.Insert(ctx, domain.Pothole{Status: domain.StatusNew, DetectedAt: base.Add(time.Minute)})

	all, err := m.List(ctx, domain.ListFilter{Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{c.ID, b.ID, a.ID}
	for i, id := range want {
		if all[i].ID != id {
			t.Fatalf("position %d: got %s want %s", i, all[i].ID, id)
		}
	}

	news, _ := m.List(ctx, domain.ListFilter{Status: domain.StatusNew, Limit: 10})
	if len(news) != 2 {
		t.Fatalf("status filter len=%d", len(news))
	}
	page, _ := m.List(ctx, domain.ListFilter{Skip: 1, Limit: 1})
	if len(page) != 1 || page[0].ID != b.ID {
		t.Fatalf("window=%+v", page)
	}
	past, _ := m.List(ctx, domain.ListFilter{Skip: 10, Limit: 1})
	if past == nil || len(past) != 0 {
		t.Fatalf("skip past end should be an empty slice, got %#v", past)
	}
}

func TestMemory_UpdateAndErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	p, _ := m.Insert(ctx, domain.Pothole{Status: domain.StatusNew, Metadata: domain.Metadata(`{"a":1}`)})

	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	st := domain.StatusVerified
	got, err := m.Update(ctx, p.ID, domain.Changes{Status: &st, UpdatedAt: at})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != domain.StatusVerified || string(got.Metadata) != `{"a":1}` || !got.UpdatedAt.Equal(at) {
		t.Fatalf("Update result %+v", got)
	}

	if _, err := m.FindByID(ctx, "0123456789abcdef01234567"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing id err=%v", err)
	}
	if _, err := m.Update(ctx, "bad", domain.Changes{}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("malformed id err=%v", err)
	}

	boom := errors.New("down")
	m.FailWith(boom)
	if _, err := m.List(ctx, domain.ListFilter{}); !errors.Is(err, boom) {
		t.Fatalf("FailWith not honoured: %v", err)
	}
	m.FailWith(nil)
	if m.Len() != 1 {
		t.Fatalf("Len=%d", m.Len())
	}
}
