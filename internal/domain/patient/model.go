// Package patient holds the patient record: demographic fields set at
// admission, three write-once string lists (history, diagnosis, allergies)
// and three append-only sub-record lists (medications, notes, procedures).
//
// The original chart stored the sub-record lists as JSON blobs inside the
// patient row, which made every append a read-modify-write with a lost-update
// race. Here each list is a child table so appends are single inserts; the
// JSON shape returned to clients is unchanged.
package patient

// Patient is the full chart record as served to clients. The list fields are
// never null in JSON: an empty chart serializes with [] for each.
type Patient struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Age           int          `json:"age"`
	Gender        string       `json:"gender"`
	AdmissionDate string       `json:"admissionDate"`
	History       []string     `json:"history"`
	Diagnosis     []string     `json:"diagnosis"`
	Allergies     []string     `json:"allergies"`
	Medications   []Medication `json:"medications"`
	Notes         []Note       `json:"notes"`
	Procedures    []Procedure  `json:"procedures"`
}

// Medication is an append-only sub-record. Administered is the only field
// ever mutated after creation.
type Medication struct {
	ID           int64  `json:"id"`
	PatientID    int64  `json:"-"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Route        string `json:"route"`
	Datetime     string `json:"datetime"`
	Administered bool   `json:"administered"`
}

// Note is immutable once appended.
type Note struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"-"`
	Note      string `json:"note"`
	Datetime  string `json:"datetime"`
	Author    string `json:"author"`
}

// Procedure is immutable once appended. Notes is optional and defaults to "".
type Procedure struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"-"`
	Procedure   string `json:"procedure"`
	Datetime    string `json:"datetime"`
	PerformedBy string `json:"performedBy"`
	Notes       string `json:"notes"`
}

// normalize replaces nil list fields with empty slices so JSON encoding
// always produces arrays.
func (p *Patient) normalize() {
	if p.History == nil {
		p.History = []string{}
	}
	if p.Diagnosis == nil {
		p.Diagnosis = []string{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	if p.Medications == nil {
		p.Medications = []Medication{}
	}
	if p.Notes == nil {
		p.Notes = []Note{}
	}
	if p.Procedures == nil {
		p.Procedures = []Procedure{}
	}
}
