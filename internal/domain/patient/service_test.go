package patient

import (
	"context"
	"errors"
	"testing"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[int64]*Patient
	nextID   int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[int64]*Patient), nextID: 1}
}

func (m *mockRepo) assign() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = m.assign()
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	cp.normalize()
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context) ([]*Patient, error) {
	var out []*Patient
	for _, p := range m.patients {
		cp := *p
		cp.normalize()
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.patients[id]
	return ok, nil
}

func (m *mockRepo) AddMedication(_ context.Context, med *Medication) error {
	p, ok := m.patients[med.PatientID]
	if !ok {
		return ErrNotFound
	}
	med.ID = m.assign()
	p.Medications = append(p.Medications, *med)
	return nil
}

func (m *mockRepo) SetMedicationAdministered(_ context.Context, patientID, medicationID int64, administered bool) (*Medication, error) {
	p, ok := m.patients[patientID]
	if !ok {
		return nil, ErrNotFound
	}
	for i := range p.Medications {
		if p.Medications[i].ID == medicationID {
			p.Medications[i].Administered = administered
			cp := p.Medications[i]
			return &cp, nil
		}
	}
	return nil, ErrMedicationNotFound
}

func (m *mockRepo) AddNote(_ context.Context, n *Note) error {
	p, ok := m.patients[n.PatientID]
	if !ok {
		return ErrNotFound
	}
	n.ID = m.assign()
	p.Notes = append(p.Notes, *n)
	return nil
}

func (m *mockRepo) AddProcedure(_ context.Context, pr *Procedure) error {
	p, ok := m.patients[pr.PatientID]
	if !ok {
		return ErrNotFound
	}
	pr.ID = m.assign()
	p.Procedures = append(p.Procedures, *pr)
	return nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func admit(t *testing.T, svc *Service) *Patient {
	t.Helper()
	p := &Patient{
		Name:          "John Doe",
		Age:           45,
		Gender:        "Male",
		AdmissionDate: "2024-01-15",
		History:       []string{"Hypertension"},
		Diagnosis:     []string{"Pneumonia"},
		Allergies:     []string{"Penicillin"},
	}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return p
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService()
	p := admit(t, svc)
	if p.ID == 0 {
		t.Error("expected a store-assigned id")
	}

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "John Doe" || got.AdmissionDate != "2024-01-15" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	for name, list := range map[string]int{
		"medications": len(got.Medications),
		"notes":       len(got.Notes),
		"procedures":  len(got.Procedures),
	} {
		if list != 0 {
			t.Errorf("expected empty %s on a new chart, got %d", name, list)
		}
	}
	if got.Medications == nil || got.Notes == nil || got.Procedures == nil {
		t.Error("sub-record lists must be non-nil")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()
	cases := []Patient{
		{Age: 45, Gender: "Male", AdmissionDate: "2024-01-15"},
		{Name: "X", Gender: "Male", AdmissionDate: "2024-01-15"},
		{Name: "X", Age: 45, AdmissionDate: "2024-01-15"},
		{Name: "X", Age: 45, Gender: "Male"},
	}
	for i, p := range cases {
		if err := svc.Create(context.Background(), &p); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestService_Create_IgnoresSubRecords(t *testing.T) {
	svc, _ := newTestService()
	p := &Patient{
		Name:          "Jane Smith",
		Age:           60,
		Gender:        "Female",
		AdmissionDate: "2024-01-10",
		Medications:   []Medication{{Medication: "smuggled"}},
		Notes:         []Note{{Note: "smuggled"}},
	}
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.Get(context.Background(), p.ID)
	if len(got.Medications) != 0 || len(got.Notes) != 0 {
		t.Error("sub-records supplied at admission must be discarded")
	}
}

func TestService_AddMedication(t *testing.T) {
	svc, _ := newTestService()
	p := admit(t, svc)

	med := &Medication{
		PatientID:    p.ID,
		Medication:   "Ceftriaxone",
		Dosage:       "1g",
		Frequency:    "BID",
		Route:        "IV",
		Datetime:     "2024-01-15T08:00",
		Administered: true, // must be forced false
	}
	if err := svc.AddMedication(context.Background(), med); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if med.Administered {
		t.Error("new medications must start un-administered")
	}

	got, _ := svc.Get(context.Background(), p.ID)
	if len(got.Medications) != 1 {
		t.Fatalf("expected 1 medication, got %d", len(got.Medications))
	}
}

func TestService_AddMedication_UnknownPatient(t *testing.T) {
	svc, _ := newTestService()
	med := &Medication{PatientID: 999, Medication: "X", Dosage: "1", Frequency: "QD", Route: "PO", Datetime: "t"}
	if err := svc.AddMedication(context.Background(), med); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_SetAdministered(t *testing.T) {
	svc, _ := newTestService()
	p := admit(t, svc)

	meds := make([]*Medication, 2)
	for i := range meds {
		meds[i] = &Medication{PatientID: p.ID, Medication: "M", Dosage: "1", Frequency: "QD", Route: "PO", Datetime: "t"}
		if err := svc.AddMedication(context.Background(), meds[i]); err != nil {
			t.Fatalf("add medication: %v", err)
		}
	}

	yes := true
	updated, err := svc.SetAdministered(context.Background(), p.ID, meds[0].ID, &yes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Administered {
		t.Error("expected administered=true after update")
	}

	// The sibling medication is untouched.
	got, _ := svc.Get(context.Background(), p.ID)
	for _, m := range got.Medications {
		if m.ID == meds[1].ID && m.Administered {
			t.Error("update leaked onto a sibling medication")
		}
	}
}

func TestService_SetAdministered_NilKeepsValue(t *testing.T) {
	svc, _ := newTestService()
	p := admit(t, svc)
	med := &Medication{PatientID: p.ID, Medication: "M", Dosage: "1", Frequency: "QD", Route: "PO", Datetime: "t"}
	if err := svc.AddMedication(context.Background(), med); err != nil {
		t.Fatalf("add medication: %v", err)
	}
	yes := true
	if _, err := svc.SetAdministered(context.Background(), p.ID, med.ID, &yes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.SetAdministered(context.Background(), p.ID, med.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Administered {
		t.Error("nil administered must leave the flag unchanged")
	}
}

func TestService_SetAdministered_NotFound(t *testing.T) {
	svc, _ := newTestService()
	p := admit(t, svc)
	yes := true

	if _, err := svc.SetAdministered(context.Background(), 999, 1, &yes); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown patient, got %v", err)
	}
	if _, err := svc.SetAdministered(context.Background(), p.ID, 999, &yes); !errors.Is(err, ErrMedicationNotFound) {
		t.Errorf("expected ErrMedicationNotFound, got %v", err)
	}
}

func TestService_AddNote(t *testing.T) {
	svc, _ := newTestService()
	p := admit(t, svc)

	n := &Note{PatientID: p.ID, Note: "Stable overnight", Datetime: "2024-01-16T06:00", Author: "Nurse Kelly"}
	if err := svc.AddNote(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.AddNote(context.Background(), &Note{PatientID: p.ID, Note: "no author", Datetime: "t"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_AddProcedure(t *testing.T) {
	svc, _ := newTestService()
	p := admit(t, svc)

	pr := &Procedure{PatientID: p.ID, Procedure: "Central line", Datetime: "2024-01-15T10:00", PerformedBy: "Dr. Lee"}
	if err := svc.AddProcedure(context.Background(), pr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := svc.Get(context.Background(), p.ID)
	if len(got.Procedures) != 1 || got.Procedures[0].Notes != "" {
		t.Errorf("expected one procedure with empty notes, got %+v", got.Procedures)
	}
}

func TestService_AppendOnly(t *testing.T) {
	svc, _ := newTestService()
	p := admit(t, svc)

	for i := 0; i < 3; i++ {
		n := &Note{PatientID: p.ID, Note: "n", Datetime: "t", Author: "a"}
		if err := svc.AddNote(context.Background(), n); err != nil {
			t.Fatalf("add note %d: %v", i, err)
		}
		got, _ := svc.Get(context.Background(), p.ID)
		if len(got.Notes) != i+1 {
			t.Fatalf("after %d appends expected %d notes, got %d", i+1, i+1, len(got.Notes))
		}
	}
}
