package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// seedBundle is one care bundle with its checklist items, inserted verbatim
// on first boot. The three infection-prevention bundles and their item order
// are part of the application contract.
type seedBundle struct {
	name        string
	description string
	items       []string
}

var seedBundles = []seedBundle{
	{
		name:        "VAP Bundle",
		description: "Ventilator-Associated Pneumonia Prevention Bundle",
		items: []string{
			"Head of bed elevation 30-45 degrees",
			"Daily sedation vacation and assessment of readiness to extubate",
			"Peptic ulcer disease prophylaxis",
			"Deep vein thrombosis prophylaxis",
			"Daily oral care with chlorhexidine",
		},
	},
	{
		name:        "CLABSI Bundle",
		description: "Central Line-Associated Bloodstream Infection Prevention Bundle",
		items: []string{
			"Hand hygiene",
			"Maximal barrier precautions",
			"Chlorhexidine skin antisepsis",
			"Optimal catheter site selection",
			"Daily review of line necessity with prompt removal of unnecessary lines",
		},
	},
	{
		name:        "CAUTI Bundle",
		description: "Catheter-Associated Urinary Tract Infection Prevention Bundle",
		items: []string{
			"Appropriate indications for urinary catheter insertion",
			"Proper insertion technique",
			"Hand hygiene",
			"Securement of catheter",
			"Maintenance of a closed drainage system",
			"Daily review of catheter necessity with prompt removal of unnecessary catheters",
		},
	},
}

type seedPatient struct {
	name          string
	age           int
	gender        string
	admissionDate string
}

var seedPatients = []seedPatient{
	{name: "John Doe", age: 65, gender: "Male", admissionDate: "2023-07-20"},
	{name: "Jane Smith", age: 50, gender: "Female", admissionDate: "2023-07-22"},
}

// Seed inserts the reference bundles, their checklist items, and two sample
// patients, but only when the corresponding tables are empty. Safe to run on
// every startup.
func Seed(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if err := seedBundleData(ctx, pool, logger); err != nil {
		return err
	}
	return seedPatientData(ctx, pool, logger)
}

func seedBundleData(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM bundles`).Scan(&count); err != nil {
		return fmt.Errorf("count bundles: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, b := range seedBundles {
		var bundleID int64
		if err := pool.QueryRow(ctx,
			`INSERT INTO bundles (name, description) VALUES ($1, $2) RETURNING id`,
			b.name, b.description,
		).Scan(&bundleID); err != nil {
			return fmt.Errorf("seed bundle %q: %w", b.name, err)
		}

		for _, item := range b.items {
			if _, err := pool.Exec(ctx,
				`INSERT INTO bundle_items (bundle_id, item_text) VALUES ($1, $2)`,
				bundleID, item,
			); err != nil {
				return fmt.Errorf("seed bundle item %q: %w", item, err)
			}
		}
	}

	logger.Info().Int("bundles", len(seedBundles)).Msg("seeded reference bundles")
	return nil
}

func seedPatientData(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&count); err != nil {
		return fmt.Errorf("count patients: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range seedPatients {
		if _, err := pool.Exec(ctx,
			`INSERT INTO patients (name, age, gender, admission_date, history, diagnosis, allergies)
			 VALUES ($1, $2, $3, $4, '[]', '[]', '[]')`,
			p.name, p.age, p.gender, p.admissionDate,
		); err != nil {
			return fmt.Errorf("seed patient %q: %w", p.name, err)
		}
	}

	logger.Info().Int("patients", len(seedPatients)).Msg("seeded sample patients")
	return nil
}
