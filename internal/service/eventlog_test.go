package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"printer_probe/internal/models"
)

// captureEventRepo records List arguments so filter normalization can be asserted.
type captureEventRepo struct {
	gotFrom time.Time
	gotTo   time.Time
	gotType string
	resp    []models.ProbeEvent
	listErr error
}

func (c *captureEventRepo) Append(ctx context.Context, e models.ProbeEvent) error { return nil }
func (c *captureEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.ProbeEvent, error) {
	c.gotFrom, c.gotTo, c.gotType = from, to, typ
	return c.resp, c.listErr
}

func TestEventLogService_List_RejectsInvertedRange(t *testing.T) {
	svc := NewEventLogService(&captureEventRepo{})

	from := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	_, err := svc.List(context.Background(), LogFilter{From: from, To: to})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("error = %v, want errInvalidTimeRange", err)
	}
}

func TestEventLogService_List_NormalizesFilter(t *testing.T) {
	repo := &captureEventRepo{resp: []models.ProbeEvent{{EventID: "e1"}}}
	svc := NewEventLogService(repo)

	loc := time.FixedZone("CEST", 2*3600)
	from := time.Date(2026, 8, 30, 10, 0, 0, 0, loc)

	out, err := svc.List(context.Background(), LogFilter{From: from, Type: "  wait_timeout "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].EventID != "e1" {
		t.Fatalf("expected repo response to pass through, got %v", out)
	}
	if repo.gotFrom.Location() != time.UTC {
		t.Errorf("from not normalized to UTC")
	}
	if !repo.gotFrom.Equal(from) {
		t.Errorf("from changed instant: %v vs %v", repo.gotFrom, from)
	}
	if repo.gotType != "WAIT_TIMEOUT" {
		t.Errorf("type = %q, want WAIT_TIMEOUT", repo.gotType)
	}
	if !repo.gotTo.IsZero() {
		t.Errorf("zero To should stay zero, got %v", repo.gotTo)
	}
}

func TestEventLogService_List_PropagatesRepoError(t *testing.T) {
	repo := &captureEventRepo{listErr: errors.New("db down")}
	svc := NewEventLogService(repo)

	if _, err := svc.List(context.Background(), LogFilter{}); err == nil {
		t.Fatalf("expected repository error to propagate")
	}
}
