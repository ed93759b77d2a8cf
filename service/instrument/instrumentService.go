package instrumentsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"instrumentrental/model"
)

type Instrument = model.Instrument

type Repo interface {
	ListAvailable(ctx context.Context, tx *sqlx.Tx, instrumentType string) ([]Instrument, error)
}

type Service interface {
	// ListAvailable: instruments with no active lease today, optionally
	// filtered by type (blank = all types).
	ListAvailable(ctx context.Context, instrumentType string) ([]Instrument, error)
}

type service struct {
	db *sqlx.DB
	r  Repo
}

func New(db *sqlx.DB, r Repo) Service { return &service{db: db, r: r} }

// ListAvailable is read-only but still runs in a committed transaction so the
// listing observes one consistent snapshot.
func (s *service) ListAvailable(ctx context.Context, instrumentType string) (out []Instrument, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
			}
		}
	}()

	out, err = s.r.ListAvailable(ctx, tx, instrumentType)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}
