package bundle

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) ListBundles(ctx context.Context) ([]*Bundle, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM bundles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bundles []*Bundle
	for rows.Next() {
		b := &Bundle{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Description); err != nil {
			return nil, err
		}
		bundles = append(bundles, b)
	}
	return bundles, rows.Err()
}

func (r *repoPG) ListItems(ctx context.Context, bundleID int64) ([]*Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, bundle_id, item_text FROM bundle_items WHERE bundle_id = $1 ORDER BY id`, bundleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		i := &Item{}
		if err := rows.Scan(&i.ID, &i.BundleID, &i.ItemText); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *repoPG) AddCheck(ctx context.Context, c *Check) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO patient_bundle_checks (patient_id, bundle_item_id, checked_by, check_date, is_checked)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		c.PatientID, c.BundleItemID, c.CheckedBy, c.CheckDate, c.IsChecked,
	).Scan(&c.ID)
}

func (r *repoPG) ListChecks(ctx context.Context, patientID int64) ([]*CheckRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT pbc.id, pbc.patient_id, pbc.bundle_item_id, pbc.checked_by, pbc.check_date, pbc.is_checked,
		       bi.item_text, b.name
		FROM patient_bundle_checks pbc
		JOIN bundle_items bi ON pbc.bundle_item_id = bi.id
		JOIN bundles b ON bi.bundle_id = b.id
		WHERE pbc.patient_id = $1
		ORDER BY pbc.check_date DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []*CheckRow
	for rows.Next() {
		row := &CheckRow{}
		if err := rows.Scan(&row.ID, &row.PatientID, &row.BundleItemID, &row.CheckedBy, &row.CheckDate, &row.IsChecked,
			&row.ItemText, &row.BundleName); err != nil {
			return nil, err
		}
		checks = append(checks, row)
	}
	return checks, rows.Err()
}

func (r *repoPG) CheckedItemIDsOn(ctx context.Context, patientID int64, day time.Time) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT bundle_item_id FROM patient_bundle_checks
		WHERE patient_id = $1 AND is_checked AND check_date::date = $2::date
		ORDER BY bundle_item_id`, patientID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
