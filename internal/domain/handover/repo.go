package handover

import "context"

type Repository interface {
	Add(ctx context.Context, role Role, h *Handover) error
	// ListByPatient returns one role's handovers for a patient, newest first.
	ListByPatient(ctx context.Context, role Role, patientID int64) ([]*Handover, error)
}
