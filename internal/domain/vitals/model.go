package vitals

import "encoding/json"

// Observation is one timestamped set of vital-sign readings. Values are
// stored verbatim: no range validation is applied and every field except the
// timestamp may be null. VentilatorParameters is kept as raw JSON so the
// nested object round-trips exactly as submitted.
type Observation struct {
	ID                   int64           `json:"id"`
	PatientID            int64           `json:"patientId"`
	HeartRate            *int            `json:"heartRate"`
	BloodPressure        *string         `json:"bloodPressure"`
	Temperature          *float64        `json:"temperature"`
	SpO2                 *int            `json:"spo2"`
	RespiratoryRate      *int            `json:"respiratoryRate"`
	UrineOutput          *int            `json:"urineOutput"`
	VentilatorParameters json.RawMessage `json:"ventilatorParameters"`
	GCS                  *int            `json:"gcs"`
	InotropesAdded       *string         `json:"inotropesAdded"`
	InfusionRates        *string         `json:"infusionRates"`
	MedicationsOngoing   *string         `json:"medicationsOngoing"`
	Rhythm               *string         `json:"rhythm"`
	Timestamp            string          `json:"timestamp"`
}
