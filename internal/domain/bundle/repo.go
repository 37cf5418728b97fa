package bundle

import (
	"context"
	"time"
)

type Repository interface {
	ListBundles(ctx context.Context) ([]*Bundle, error)
	ListItems(ctx context.Context, bundleID int64) ([]*Item, error)

	AddCheck(ctx context.Context, c *Check) error
	// ListChecks returns the patient's check events joined with item text and
	// bundle name, newest first.
	ListChecks(ctx context.Context, patientID int64) ([]*CheckRow, error)
	// CheckedItemIDsOn returns the distinct bundle item ids that have at least
	// one truthy check row for the patient whose check date falls on the given
	// calendar day. Multiple same-day rows are not tie-broken: any truthy row
	// wins.
	CheckedItemIDsOn(ctx context.Context, patientID int64, day time.Time) ([]int64, error)
}
