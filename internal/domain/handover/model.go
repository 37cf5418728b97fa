// Package handover keeps the two shift-change logs: doctor and nurse
// handovers are independent append-only lists with identical shape.
package handover

import "time"

// Role selects which of the two handover logs an operation targets.
type Role string

const (
	Doctor Role = "doctor"
	Nurse  Role = "nurse"
)

// Handover is one free-text shift-change note. HandoverDate is
// server-assigned at append time.
type Handover struct {
	ID           int64     `json:"id"`
	PatientID    int64     `json:"patientId"`
	HandoverText string    `json:"handoverText"`
	HandoverBy   string    `json:"handoverBy"`
	HandoverDate time.Time `json:"handoverDate"`
}
