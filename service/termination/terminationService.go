package termination

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repo interface {
	TerminateLease(ctx context.Context, tx *sqlx.Tx, leaseID int64) (int64, error)
}

type Service interface {
	// Terminate ends a lease today. Already-ended and unknown lease ids are
	// accepted no-ops.
	Terminate(ctx context.Context, leaseID int64) error
}

type service struct {
	db *sqlx.DB
	r  Repo
}

func New(db *sqlx.DB, r Repo) Service {
	return &service{db: db, r: r}
}

func (s *service) Terminate(ctx context.Context, leaseID int64) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
			}
		}
	}()

	// Zero affected rows means the lease already ended on or before today;
	// the guarded update never moves end_day later.
	if _, err = s.r.TerminateLease(ctx, tx, leaseID); err != nil {
		return err
	}
	return tx.Commit()
}
