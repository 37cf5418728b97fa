package patient

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when the referenced patient does not exist.
	ErrNotFound = errors.New("patient not found")
	// ErrMedicationNotFound is returned when a medication id does not exist
	// under the given patient.
	ErrMedicationNotFound = errors.New("medication not found")
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)
	Exists(ctx context.Context, id int64) (bool, error)

	AddMedication(ctx context.Context, m *Medication) error
	SetMedicationAdministered(ctx context.Context, patientID, medicationID int64, administered bool) (*Medication, error)
	AddNote(ctx context.Context, n *Note) error
	AddProcedure(ctx context.Context, p *Procedure) error
}
