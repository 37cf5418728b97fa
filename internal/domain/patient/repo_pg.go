package patient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.normalize()

	history, err := json.Marshal(p.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	diagnosis, err := json.Marshal(p.Diagnosis)
	if err != nil {
		return fmt.Errorf("encode diagnosis: %w", err)
	}
	allergies, err := json.Marshal(p.Allergies)
	if err != nil {
		return fmt.Errorf("encode allergies: %w", err)
	}

	return r.pool.QueryRow(ctx, `
		INSERT INTO patients (name, age, gender, admission_date, history, diagnosis, allergies)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.Name, p.Age, p.Gender, p.AdmissionDate, history, diagnosis, allergies,
	).Scan(&p.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, err := r.scanPatientRow(r.pool.QueryRow(ctx, `
		SELECT id, name, age, gender, admission_date, history, diagnosis, allergies
		FROM patients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := r.loadSubRecords(ctx, []*Patient{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, age, gender, admission_date, history, diagnosis, allergies
		FROM patients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := r.scanPatientRow(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadSubRecords(ctx, patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *repoPG) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM patients WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repoPG) AddMedication(ctx context.Context, m *Medication) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO patient_medications (patient_id, medication, dosage, frequency, route, datetime, administered)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		m.PatientID, m.Medication, m.Dosage, m.Frequency, m.Route, m.Datetime, m.Administered,
	).Scan(&m.ID)
}

func (r *repoPG) SetMedicationAdministered(ctx context.Context, patientID, medicationID int64, administered bool) (*Medication, error) {
	m := &Medication{}
	err := r.pool.QueryRow(ctx, `
		UPDATE patient_medications SET administered = $3
		WHERE patient_id = $1 AND id = $2
		RETURNING id, patient_id, medication, dosage, frequency, route, datetime, administered`,
		patientID, medicationID, administered,
	).Scan(&m.ID, &m.PatientID, &m.Medication, &m.Dosage, &m.Frequency, &m.Route, &m.Datetime, &m.Administered)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMedicationNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *repoPG) AddNote(ctx context.Context, n *Note) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO patient_notes (patient_id, note, datetime, author)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		n.PatientID, n.Note, n.Datetime, n.Author,
	).Scan(&n.ID)
}

func (r *repoPG) AddProcedure(ctx context.Context, p *Procedure) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO patient_procedures (patient_id, procedure, datetime, performed_by, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.PatientID, p.Procedure, p.Datetime, p.PerformedBy, p.Notes,
	).Scan(&p.ID)
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *repoPG) scanPatientRow(row rowScanner) (*Patient, error) {
	p := &Patient{}
	var history, diagnosis, allergies []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.AdmissionDate, &history, &diagnosis, &allergies); err != nil {
		return nil, err
	}

	// An empty or absent column decodes to an empty list, never an error.
	if err := decodeStringList(history, &p.History); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if err := decodeStringList(diagnosis, &p.Diagnosis); err != nil {
		return nil, fmt.Errorf("decode diagnosis: %w", err)
	}
	if err := decodeStringList(allergies, &p.Allergies); err != nil {
		return nil, fmt.Errorf("decode allergies: %w", err)
	}
	return p, nil
}

func decodeStringList(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		*dst = []string{}
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return err
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}

// loadSubRecords fills the medications, notes, and procedures lists for the
// given patients in one query per table, preserving insertion (id) order.
func (r *repoPG) loadSubRecords(ctx context.Context, patients []*Patient) error {
	if len(patients) == 0 {
		return nil
	}

	byID := make(map[int64]*Patient, len(patients))
	ids := make([]int64, 0, len(patients))
	for _, p := range patients {
		p.normalize()
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, medication, dosage, frequency, route, datetime, administered
		FROM patient_medications WHERE patient_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.PatientID, &m.Medication, &m.Dosage, &m.Frequency, &m.Route, &m.Datetime, &m.Administered); err != nil {
			rows.Close()
			return err
		}
		if p, ok := byID[m.PatientID]; ok {
			p.Medications = append(p.Medications, m)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT id, patient_id, note, datetime, author
		FROM patient_notes WHERE patient_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.PatientID, &n.Note, &n.Datetime, &n.Author); err != nil {
			rows.Close()
			return err
		}
		if p, ok := byID[n.PatientID]; ok {
			p.Notes = append(p.Notes, n)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT id, patient_id, procedure, datetime, performed_by, notes
		FROM patient_procedures WHERE patient_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var proc Procedure
		if err := rows.Scan(&proc.ID, &proc.PatientID, &proc.Procedure, &proc.Datetime, &proc.PerformedBy, &proc.Notes); err != nil {
			rows.Close()
			return err
		}
		if p, ok := byID[proc.PatientID]; ok {
			p.Procedures = append(p.Procedures, proc)
		}
	}
	rows.Close()
	return rows.Err()
}
