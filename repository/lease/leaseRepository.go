// repository/lease/repo.go
package lease

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jmoiron/sqlx"

	"instrumentrental/model"
)

// activeToday is the whole-day active-lease window check.
const activeToday = "CURRENT_DATE >= start_day AND CURRENT_DATE < end_day"

type Repo interface {
	// Instruments & availability
	ListAvailable(ctx context.Context, tx *sqlx.Tx, instrumentType string) ([]model.Instrument, error)
	LockInstrument(ctx context.Context, tx *sqlx.Tx, instrumentID int64) error
	IsInstrumentAvailable(ctx context.Context, tx *sqlx.Tx, instrumentID int64) (bool, error)

	// Leases
	LockStudentLeases(ctx context.Context, tx *sqlx.Tx, studentID int64) error
	CountActiveLeases(ctx context.Context, tx *sqlx.Tx, studentID int64) (int, error)
	InsertLease(ctx context.Context, tx *sqlx.Tx, studentID, instrumentID int64, endDay time.Time) (int64, error)
	TerminateLease(ctx context.Context, tx *sqlx.Tx, leaseID int64) (int64, error)

	// History
	ListStudentLeases(ctx context.Context, studentID int64) ([]model.LeaseHistoryRow, error)
}

type repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repo { return &repo{db: db} }

// Instruments & availability

// ListAvailable returns instruments with no active lease today. A blank
// instrumentType means no type restriction. The filter is always bound as a
// query parameter, never concatenated into the statement.
func (r *repo) ListAvailable(ctx context.Context, tx *sqlx.Tx, instrumentType string) ([]model.Instrument, error) {
	ds := goqu.Dialect("postgres").
		From("instrument").
		Select("id", "price", "type", "brand", "quality").
		Where(goqu.C("id").NotIn(
			goqu.From("lease").
				Select("instrument_id").
				Where(goqu.L(activeToday)),
		)).
		Order(goqu.C("id").Asc())
	if instrumentType != "" {
		ds = ds.Where(goqu.C("type").Eq(instrumentType))
	}

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var out []model.Instrument
	if err := tx.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) LockInstrument(ctx context.Context, tx *sqlx.Tx, instrumentID int64) error {
	// Serializes concurrent creates for the same instrument across different
	// students; locking only lease rows would not help when the instrument
	// has no active lease yet.
	const q = `
				SELECT id
				FROM instrument
				WHERE id = $1
				FOR UPDATE`
	var id int64
	return tx.QueryRowContext(ctx, q, instrumentID).Scan(&id)
}

func (r *repo) IsInstrumentAvailable(ctx context.Context, tx *sqlx.Tx, instrumentID int64) (bool, error) {
	const q = `
			SELECT COUNT(*) = 0
			FROM lease
			WHERE instrument_id = $1
			AND CURRENT_DATE >= start_day
			AND CURRENT_DATE < end_day`
	var free bool
	err := tx.QueryRowContext(ctx, q, instrumentID).Scan(&free)
	return free, err
}

// Leases

func (r *repo) LockStudentLeases(ctx context.Context, tx *sqlx.Tx, studentID int64) error {
	// Without this lock two concurrent creates for the same student could
	// both observe a count below the quota and both insert.
	const q = `
				SELECT id
				FROM lease
				WHERE student_id = $1
				FOR UPDATE`
	_, err := tx.ExecContext(ctx, q, studentID)
	return err
}

// CountActiveLeases is only race-free after LockStudentLeases in the same tx.
func (r *repo) CountActiveLeases(ctx context.Context, tx *sqlx.Tx, studentID int64) (int, error) {
	const q = `
			SELECT COUNT(*)
			FROM lease
			WHERE student_id = $1
			AND CURRENT_DATE >= start_day
			AND CURRENT_DATE < end_day`
	var n int
	err := tx.QueryRowContext(ctx, q, studentID).Scan(&n)
	return n, err
}

func (r *repo) InsertLease(ctx context.Context, tx *sqlx.Tx, studentID, instrumentID int64, endDay time.Time) (int64, error) {
	const q = `
		INSERT INTO lease (student_id, instrument_id, start_day, end_day)
		VALUES ($1, $2, CURRENT_DATE, $3)
		RETURNING id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, studentID, instrumentID, endDay).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// TerminateLease ends a lease today. The guard keeps end_day monotonic:
// a lease that already ended is left untouched, so the update affects zero
// rows and the caller treats that as a no-op.
func (r *repo) TerminateLease(ctx context.Context, tx *sqlx.Tx, leaseID int64) (int64, error) {
	const q = `
		UPDATE lease
		SET end_day = CURRENT_DATE
		WHERE id = $1
		AND end_day > CURRENT_DATE`
	res, err := tx.ExecContext(ctx, q, leaseID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// History

func (r *repo) ListStudentLeases(ctx context.Context, studentID int64) ([]model.LeaseHistoryRow, error) {
	const q = `
			SELECT
			l.id            AS lease_id,
			l.instrument_id AS instrument_id,
			i.type          AS instrument_type,
			i.brand         AS brand,
			l.start_day     AS start_day,
			l.end_day       AS end_day,
			(CURRENT_DATE >= l.start_day AND CURRENT_DATE < l.end_day) AS active
			FROM lease l
			JOIN instrument i ON i.id = l.instrument_id
			WHERE l.student_id = $1
			ORDER BY l.start_day DESC, l.id DESC`
	var out []model.LeaseHistoryRow
	if err := r.db.SelectContext(ctx, &out, q, studentID); err != nil {
		return nil, err
	}
	return out, nil
}
