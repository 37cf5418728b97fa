package vitals

import "context"

type Repository interface {
	Add(ctx context.Context, o *Observation) error
	// ListByPatient returns the patient's observations newest first.
	ListByPatient(ctx context.Context, patientID int64) ([]*Observation, error)
}
