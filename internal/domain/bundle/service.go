package bundle

import (
	"context"
	"errors"
	"time"
)

// ErrMissingFields is returned when a check is recorded without the item id
// or the checker.
var ErrMissingFields = errors.New("bundle item id and checker are required")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListBundles(ctx context.Context) ([]*Bundle, error) {
	return s.repo.ListBundles(ctx)
}

func (s *Service) ListItems(ctx context.Context, bundleID int64) ([]*Item, error) {
	return s.repo.ListItems(ctx, bundleID)
}

// RecordCheck appends a check event. The check date is the current server
// instant, never client-supplied; a missing isChecked defaults to false.
func (s *Service) RecordCheck(ctx context.Context, c *Check) error {
	if c.BundleItemID == 0 || c.CheckedBy == "" {
		return ErrMissingFields
	}
	c.CheckDate = s.now()
	return s.repo.AddCheck(ctx, c)
}

func (s *Service) ListChecks(ctx context.Context, patientID int64) ([]*CheckRow, error) {
	return s.repo.ListChecks(ctx, patientID)
}

// CheckedToday derives the set of item ids considered checked for the current
// calendar day: an item is checked iff any of today's rows for it is truthy.
// There is deliberately no last-write-wins tie-break among same-day rows.
func (s *Service) CheckedToday(ctx context.Context, patientID int64) ([]int64, error) {
	return s.repo.CheckedItemIDsOn(ctx, patientID, s.now())
}
