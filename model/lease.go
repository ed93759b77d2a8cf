// model/lease.go
package model

import "time"

// Lease is active at date d iff start_day <= d < end_day. Rows are kept
// forever; termination and natural expiry only move or pass end_day.
type Lease struct {
	ID           int64     `db:"id" json:"id"`
	StudentID    int64     `db:"student_id" json:"student_id"`
	InstrumentID int64     `db:"instrument_id" json:"instrument_id"`
	StartDay     time.Time `db:"start_day" json:"start_day"`
	EndDay       time.Time `db:"end_day" json:"end_day"`
}

type LeaseHistoryRow struct {
	LeaseID        int64     `db:"lease_id" json:"lease_id"`
	InstrumentID   int64     `db:"instrument_id" json:"instrument_id"`
	InstrumentType string    `db:"instrument_type" json:"instrument_type"`
	Brand          string    `db:"brand" json:"brand"`
	StartDay       time.Time `db:"start_day" json:"start_day"`
	EndDay         time.Time `db:"end_day" json:"end_day"`
	Active         bool      `db:"active" json:"active"`
}
