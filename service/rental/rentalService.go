package rental

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"instrumentrental/model"
)

const (
	maxActiveLeases = 2
	maxLeaseMonths  = 12
	endDayLayout    = "2006-01-02"
)

// errors used by controllers

type ErrCode string

const (
	ErrBadEndDate            ErrCode = "END_DATE_INVALID"
	ErrQuotaExceeded         ErrCode = "QUOTA_EXCEEDED"
	ErrInstrumentUnavailable ErrCode = "INSTRUMENT_UNAVAILABLE"
	ErrInstrumentNotFound    ErrCode = "INSTRUMENT_NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// HistoryRow = repository shape
type HistoryRow = model.LeaseHistoryRow

type Repo interface {
	LockStudentLeases(ctx context.Context, tx *sqlx.Tx, studentID int64) error
	CountActiveLeases(ctx context.Context, tx *sqlx.Tx, studentID int64) (int, error)
	LockInstrument(ctx context.Context, tx *sqlx.Tx, instrumentID int64) error
	IsInstrumentAvailable(ctx context.Context, tx *sqlx.Tx, instrumentID int64) (bool, error)
	InsertLease(ctx context.Context, tx *sqlx.Tx, studentID, instrumentID int64, endDay time.Time) (int64, error)

	ListStudentLeases(ctx context.Context, studentID int64) ([]model.LeaseHistoryRow, error)
}

type Service interface {
	// CreateLease: rent an instrument to a student until endDay (yyyy-mm-dd).
	CreateLease(ctx context.Context, studentID, instrumentID int64, endDay string) (int64, error)

	// StudentHistory: list all leases for a student, newest first.
	StudentHistory(ctx context.Context, studentID int64) ([]HistoryRow, error)
}

// ----- Service implementation -----

type service struct {
	db *sqlx.DB
	r  Repo
}

func New(db *sqlx.DB, r Repo) Service {
	return &service{db: db, r: r}
}

// CreateLease validates the end date, then runs the whole quota/availability
// check and insert inside one transaction. The student's lease rows are locked
// before counting, so a concurrent create for the same student blocks until
// this transaction commits or rolls back and then sees the committed count.
func (s *service) CreateLease(ctx context.Context, studentID, instrumentID int64, endDay string) (leaseID int64, err error) {
	end, err := parseEndDay(endDay, time.Now())
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
			}
		}
	}()

	if err = s.r.LockStudentLeases(ctx, tx, studentID); err != nil {
		return 0, err
	}
	count, err := s.r.CountActiveLeases(ctx, tx, studentID)
	if err != nil {
		return 0, err
	}
	if count >= maxActiveLeases {
		err = makeErr(ErrQuotaExceeded)
		return 0, err
	}

	if err = s.r.LockInstrument(ctx, tx, instrumentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = makeErr(ErrInstrumentNotFound)
		}
		return 0, err
	}
	free, err := s.r.IsInstrumentAvailable(ctx, tx, instrumentID)
	if err != nil {
		return 0, err
	}
	if !free {
		err = makeErr(ErrInstrumentUnavailable)
		return 0, err
	}

	leaseID, err = s.r.InsertLease(ctx, tx, studentID, instrumentID, end)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return leaseID, nil
}

func (s *service) StudentHistory(ctx context.Context, studentID int64) ([]HistoryRow, error) {
	return s.r.ListStudentLeases(ctx, studentID)
}

// parseEndDay accepts dates strictly after today and at most 12 months out.
func parseEndDay(endDay string, now time.Time) (time.Time, error) {
	end, err := time.Parse(endDayLayout, endDay)
	if err != nil {
		return time.Time{}, makeErr(ErrBadEndDate)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !end.After(today) || end.After(today.AddDate(0, maxLeaseMonths, 0)) {
		return time.Time{}, makeErr(ErrBadEndDate)
	}
	return end, nil
}
