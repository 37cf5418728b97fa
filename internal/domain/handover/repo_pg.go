package handover

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// tableFor maps a role to its table. The whitelist keeps the table name out
// of caller control; SQL below interpolates only these two constants.
func tableFor(role Role) (string, error) {
	switch role {
	case Doctor:
		return "doctor_handovers", nil
	case Nurse:
		return "nurse_handovers", nil
	default:
		return "", fmt.Errorf("unknown handover role %q", role)
	}
}

func (r *repoPG) Add(ctx context.Context, role Role, h *Handover) error {
	table, err := tableFor(role)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO `+table+` (patient_id, handover_text, handover_by, handover_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		h.PatientID, h.HandoverText, h.HandoverBy, h.HandoverDate,
	).Scan(&h.ID)
}

func (r *repoPG) ListByPatient(ctx context.Context, role Role, patientID int64) ([]*Handover, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, handover_text, handover_by, handover_date
		FROM `+table+` WHERE patient_id = $1 ORDER BY handover_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var handovers []*Handover
	for rows.Next() {
		h := &Handover{}
		if err := rows.Scan(&h.ID, &h.PatientID, &h.HandoverText, &h.HandoverBy, &h.HandoverDate); err != nil {
			return nil, err
		}
		handovers = append(handovers, h)
	}
	return handovers, rows.Err()
}
