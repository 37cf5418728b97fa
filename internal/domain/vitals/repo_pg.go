package vitals

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const observationCols = `id, patient_id, heart_rate, blood_pressure, temperature, spo2,
	respiratory_rate, urine_output, ventilator_parameters, gcs,
	inotropes_added, infusion_rates, medications_ongoing, rhythm, timestamp`

func (r *repoPG) Add(ctx context.Context, o *Observation) error {
	var ventilator any
	if len(o.VentilatorParameters) > 0 {
		ventilator = []byte(o.VentilatorParameters)
	}

	return r.pool.QueryRow(ctx, `
		INSERT INTO vitals (patient_id, heart_rate, blood_pressure, temperature, spo2,
			respiratory_rate, urine_output, ventilator_parameters, gcs,
			inotropes_added, infusion_rates, medications_ongoing, rhythm, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		o.PatientID, o.HeartRate, o.BloodPressure, o.Temperature, o.SpO2,
		o.RespiratoryRate, o.UrineOutput, ventilator, o.GCS,
		o.InotropesAdded, o.InfusionRates, o.MedicationsOngoing, o.Rhythm, o.Timestamp,
	).Scan(&o.ID)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Observation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+observationCols+` FROM vitals
		WHERE patient_id = $1 ORDER BY timestamp DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var observations []*Observation
	for rows.Next() {
		o := &Observation{}
		var ventilator []byte
		if err := rows.Scan(&o.ID, &o.PatientID, &o.HeartRate, &o.BloodPressure, &o.Temperature, &o.SpO2,
			&o.RespiratoryRate, &o.UrineOutput, &ventilator, &o.GCS,
			&o.InotropesAdded, &o.InfusionRates, &o.MedicationsOngoing, &o.Rhythm, &o.Timestamp); err != nil {
			return nil, err
		}
		if len(ventilator) > 0 {
			o.VentilatorParameters = ventilator
		}
		observations = append(observations, o)
	}
	return observations, rows.Err()
}
