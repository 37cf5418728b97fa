package handover

import (
	"context"
	"errors"
	"time"
)

// ErrMissingFields is returned when the handover text or author is absent.
var ErrMissingFields = errors.New("handover text and author are required")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Add appends a handover to one role's log. The date is server-assigned.
func (s *Service) Add(ctx context.Context, role Role, h *Handover) error {
	if h.HandoverText == "" || h.HandoverBy == "" {
		return ErrMissingFields
	}
	h.HandoverDate = s.now()
	return s.repo.Add(ctx, role, h)
}

func (s *Service) ListByPatient(ctx context.Context, role Role, patientID int64) ([]*Handover, error) {
	return s.repo.ListByPatient(ctx, role, patientID)
}
