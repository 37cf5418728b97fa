// Package bundle serves the static care-bundle reference data and the
// per-patient checklist event log. Checks are events, not state: every
// checkbox toggle appends a row, and "checked today" is derived by scanning
// the day's rows for any truthy entry.
package bundle

import "time"

// Bundle is seeded reference data, never mutated by any exposed operation.
type Bundle struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Item is one checklist entry belonging to a bundle, seeded with it.
type Item struct {
	ID       int64  `json:"id"`
	BundleID int64  `json:"bundleId"`
	ItemText string `json:"itemText"`
}

// Check is one checkbox toggle event. CheckDate is server-assigned at call
// time; IsChecked records the state the caller toggled to.
type Check struct {
	ID           int64     `json:"id"`
	PatientID    int64     `json:"patientId"`
	BundleItemID int64     `json:"bundleItemId"`
	CheckedBy    string    `json:"checkedBy"`
	CheckDate    time.Time `json:"checkDate"`
	IsChecked    bool      `json:"isChecked"`
}

// CheckRow is a check joined with its item text and bundle name, the shape
// returned by the per-patient check listing.
type CheckRow struct {
	Check
	ItemText   string `json:"itemText"`
	BundleName string `json:"bundleName"`
}
