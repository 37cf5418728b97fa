package bundle

import (
	"context"
	"testing"
	"time"
)

// -- Mock Repository --

type mockRepo struct {
	bundles []*Bundle
	items   []*Item
	checks  []*Check
	nextID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		bundles: []*Bundle{
			{ID: 1, Name: "VAP", Description: "Ventilator-Associated Pneumonia prevention"},
			{ID: 2, Name: "CLABSI", Description: "Central Line-Associated Bloodstream Infection prevention"},
		},
		items: []*Item{
			{ID: 1, BundleID: 1, ItemText: "Head of bed elevated 30-45 degrees"},
			{ID: 2, BundleID: 1, ItemText: "Daily sedation vacation"},
			{ID: 3, BundleID: 2, ItemText: "Hand hygiene before insertion"},
		},
		nextID: 1,
	}
}

func (m *mockRepo) ListBundles(_ context.Context) ([]*Bundle, error) { return m.bundles, nil }

func (m *mockRepo) ListItems(_ context.Context, bundleID int64) ([]*Item, error) {
	var out []*Item
	for _, it := range m.items {
		if it.BundleID == bundleID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockRepo) AddCheck(_ context.Context, c *Check) error {
	c.ID = m.nextID
	m.nextID++
	cp := *c
	m.checks = append(m.checks, &cp)
	return nil
}

func (m *mockRepo) ListChecks(_ context.Context, patientID int64) ([]*CheckRow, error) {
	var out []*CheckRow
	for i := len(m.checks) - 1; i >= 0; i-- {
		c := m.checks[i]
		if c.PatientID != patientID {
			continue
		}
		row := &CheckRow{Check: *c}
		for _, it := range m.items {
			if it.ID == c.BundleItemID {
				row.ItemText = it.ItemText
				for _, b := range m.bundles {
					if b.ID == it.BundleID {
						row.BundleName = b.Name
					}
				}
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *mockRepo) CheckedItemIDsOn(_ context.Context, patientID int64, day time.Time) ([]int64, error) {
	seen := make(map[int64]bool)
	var out []int64
	y, mo, d := day.Date()
	for _, c := range m.checks {
		cy, cmo, cd := c.CheckDate.Date()
		if c.PatientID != patientID || !c.IsChecked || cy != y || cmo != mo || cd != d {
			continue
		}
		if !seen[c.BundleItemID] {
			seen[c.BundleItemID] = true
			out = append(out, c.BundleItemID)
		}
	}
	return out, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

func TestService_RecordCheck(t *testing.T) {
	svc, repo := newTestService()
	fixed := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	check := &Check{
		PatientID:    1,
		BundleItemID: 1,
		CheckedBy:    "Nurse Kelly",
		IsChecked:    true,
		CheckDate:    time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), // must be overwritten
	}
	if err := svc.RecordCheck(context.Background(), check); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !check.CheckDate.Equal(fixed) {
		t.Errorf("check date must be server-assigned, got %v", check.CheckDate)
	}
	if len(repo.checks) != 1 {
		t.Fatalf("expected 1 stored check, got %d", len(repo.checks))
	}
}

func TestService_RecordCheck_MissingFields(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.RecordCheck(context.Background(), &Check{PatientID: 1, CheckedBy: "x"}); err != ErrMissingFields {
		t.Errorf("expected ErrMissingFields for missing item id, got %v", err)
	}
	if err := svc.RecordCheck(context.Background(), &Check{PatientID: 1, BundleItemID: 1}); err != ErrMissingFields {
		t.Errorf("expected ErrMissingFields for missing checker, got %v", err)
	}
}

func TestService_RecordCheck_AppendsEvents(t *testing.T) {
	svc, repo := newTestService()

	// Toggling the same item on and off appends two rows; nothing is
	// overwritten.
	for _, state := range []bool{true, false} {
		c := &Check{PatientID: 1, BundleItemID: 1, CheckedBy: "n", IsChecked: state}
		if err := svc.RecordCheck(context.Background(), c); err != nil {
			t.Fatalf("record check: %v", err)
		}
	}
	if len(repo.checks) != 2 {
		t.Fatalf("expected 2 event rows, got %d", len(repo.checks))
	}
}

func TestService_CheckedToday(t *testing.T) {
	svc, _ := newTestService()
	today := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return today }

	// Item 1: checked then unchecked today. Any truthy row counts, so it
	// remains in the set.
	for _, state := range []bool{true, false} {
		if err := svc.RecordCheck(context.Background(), &Check{PatientID: 1, BundleItemID: 1, CheckedBy: "n", IsChecked: state}); err != nil {
			t.Fatalf("record check: %v", err)
		}
	}
	// Item 2: only an unchecked row today.
	if err := svc.RecordCheck(context.Background(), &Check{PatientID: 1, BundleItemID: 2, CheckedBy: "n", IsChecked: false}); err != nil {
		t.Fatalf("record check: %v", err)
	}
	// Item 3: checked yesterday only.
	svc.now = func() time.Time { return today.AddDate(0, 0, -1) }
	if err := svc.RecordCheck(context.Background(), &Check{PatientID: 1, BundleItemID: 3, CheckedBy: "n", IsChecked: true}); err != nil {
		t.Fatalf("record check: %v", err)
	}
	svc.now = func() time.Time { return today }

	ids, err := svc.CheckedToday(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("expected checked set [1], got %v", ids)
	}
}

func TestService_ListChecks_NewestFirst(t *testing.T) {
	svc, _ := newTestService()
	base := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	for i, itemID := range []int64{1, 2} {
		when := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return when }
		if err := svc.RecordCheck(context.Background(), &Check{PatientID: 1, BundleItemID: itemID, CheckedBy: "n", IsChecked: true}); err != nil {
			t.Fatalf("record check: %v", err)
		}
	}

	rows, err := svc.ListChecks(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].BundleItemID != 2 {
		t.Errorf("expected newest check first, got item %d", rows[0].BundleItemID)
	}
	if rows[0].ItemText == "" || rows[0].BundleName == "" {
		t.Error("expected item text and bundle name to be joined in")
	}
}
