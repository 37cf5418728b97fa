package patient

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidInput wraps every required-field validation failure; handlers map
// it to HTTP 400.
var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create admits a new patient. The three history lists are write-once: they
// are set here and no operation mutates them afterwards. The sub-record lists
// always start empty.
func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.Name == "" || p.Age <= 0 || p.Gender == "" || p.AdmissionDate == "" {
		return fmt.Errorf("%w: all patient fields are required", ErrInvalidInput)
	}
	p.Medications = nil
	p.Notes = nil
	p.Procedures = nil
	p.normalize()
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

// AddMedication appends a medication to the patient's chart. New medications
// are never administered; the flag is flipped only by SetAdministered.
func (s *Service) AddMedication(ctx context.Context, m *Medication) error {
	if m.Medication == "" || m.Dosage == "" || m.Frequency == "" || m.Route == "" || m.Datetime == "" {
		return fmt.Errorf("%w: all medication fields are required", ErrInvalidInput)
	}
	if err := s.requirePatient(ctx, m.PatientID); err != nil {
		return err
	}
	m.Administered = false
	return s.repo.AddMedication(ctx, m)
}

// SetAdministered flips the administered flag on one medication and nothing
// else. A nil administered value leaves the flag unchanged.
func (s *Service) SetAdministered(ctx context.Context, patientID, medicationID int64, administered *bool) (*Medication, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}
	if administered == nil {
		// Keep the current value: read it back via a no-op update is not
		// possible, so fetch the chart and locate the medication.
		p, err := s.repo.GetByID(ctx, patientID)
		if err != nil {
			return nil, err
		}
		for i := range p.Medications {
			if p.Medications[i].ID == medicationID {
				return &p.Medications[i], nil
			}
		}
		return nil, ErrMedicationNotFound
	}
	return s.repo.SetMedicationAdministered(ctx, patientID, medicationID, *administered)
}

func (s *Service) AddNote(ctx context.Context, n *Note) error {
	if n.Note == "" || n.Datetime == "" || n.Author == "" {
		return fmt.Errorf("%w: note, datetime, and author are required", ErrInvalidInput)
	}
	if err := s.requirePatient(ctx, n.PatientID); err != nil {
		return err
	}
	return s.repo.AddNote(ctx, n)
}

func (s *Service) AddProcedure(ctx context.Context, p *Procedure) error {
	if p.Procedure == "" || p.Datetime == "" || p.PerformedBy == "" {
		return fmt.Errorf("%w: procedure, datetime, and performedBy are required", ErrInvalidInput)
	}
	if err := s.requirePatient(ctx, p.PatientID); err != nil {
		return err
	}
	return s.repo.AddProcedure(ctx, p)
}

func (s *Service) requirePatient(ctx context.Context, id int64) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}
