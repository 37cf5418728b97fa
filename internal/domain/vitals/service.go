package vitals

import (
	"context"
	"errors"
)

// ErrMissingTimestamp is the single validation failure for recording an
// observation: every other field, including the whole ventilator block, may
// be absent.
var ErrMissingTimestamp = errors.New("timestamp is required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, o *Observation) error {
	if o.Timestamp == "" {
		return ErrMissingTimestamp
	}
	return s.repo.Add(ctx, o)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Observation, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
